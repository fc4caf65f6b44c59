package namematch

import (
	"slices"
	"testing"
)

func TestStripGenericPrefix(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		in   string
		want string
	}{
		{"Château Margaux", "Margaux"},
		{"Château", ""},
		{"Domaine", ""},
		{"Dom. Pérignon", "Pérignon"},
		{"Lafite Rothschild", "Lafite Rothschild"},
		{"  Clos de Tart  ", "de Tart"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := rules.StripGenericPrefix(tc.in); got != tc.want {
			t.Fatalf("StripGenericPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSearchNameFallsBackWhenStrippedEmpty(t *testing.T) {
	rules := DefaultRules()
	if got := rules.SearchName("Château"); got != "Château" {
		t.Fatalf("SearchName(%q) = %q, want original", "Château", got)
	}
	if got := rules.SearchName("Château Margaux"); got != "Margaux" {
		t.Fatalf("SearchName = %q, want %q", got, "Margaux")
	}
}

func TestNormalizeLoose(t *testing.T) {
	rules := DefaultRules()
	if got := rules.NormalizeLoose("Château d'Yquem"); got != "d yquem" {
		t.Fatalf("NormalizeLoose = %q", got)
	}
	if got := rules.NormalizeLoose("Giacomo Conterno"); got != "giacomo conterno" {
		t.Fatalf("NormalizeLoose = %q", got)
	}
}

func TestVariantsPrefixSuffixRuns(t *testing.T) {
	rules := DefaultRules()
	variants := rules.Variants("chateau-margaux-pavillon-rouge")

	for _, want := range []string{
		"chateau-margaux-pavillon-rouge",
		"margaux-pavillon-rouge",
		"pavillon-rouge",
		"rouge",
	} {
		if !slices.Contains(variants, want) {
			t.Fatalf("variants missing %q: %v", want, variants)
		}
	}
	if slices.Contains(variants, "chateau") {
		t.Fatalf("stop word survived: %v", variants)
	}
	for _, v := range variants {
		if len(v) < 4 {
			t.Fatalf("variant %q below length floor", v)
		}
	}
	for i := 1; i < len(variants); i++ {
		if len(variants[i]) > len(variants[i-1]) {
			t.Fatalf("variants not ordered by descending length: %v", variants)
		}
	}
}

func TestVariantsEmptyToken(t *testing.T) {
	if got := DefaultRules().Variants(""); got != nil {
		t.Fatalf("expected nil variants, got %v", got)
	}
}

func TestMatchesVariantWordBoundary(t *testing.T) {
	cases := []struct {
		text    string
		variant string
		want    bool
	}{
		{"clos-vougeot", "clos", true},
		{"closerie", "clos", false},
		{"margaux", "margaux", true},
		{"margaux pavillon", "margaux", true},
		{"margauxpavillon", "margaux", false},
		{"", "clos", false},
		{"clos", "", false},
	}
	for _, tc := range cases {
		if got := MatchesVariant(tc.text, tc.variant); got != tc.want {
			t.Fatalf("MatchesVariant(%q, %q) = %v, want %v", tc.text, tc.variant, got, tc.want)
		}
	}
}

func TestNewRulesCustomVocabulary(t *testing.T) {
	rules := NewRules([]string{"Weingut"}, []string{"weingut"}, 3)
	if got := rules.StripGenericPrefix("Weingut Keller"); got != "Keller" {
		t.Fatalf("custom prefix not stripped: %q", got)
	}
	if got := rules.StripGenericPrefix("Château Margaux"); got != "Château Margaux" {
		t.Fatalf("default prefix should not apply: %q", got)
	}
}
