package namematch

import (
	"sort"
	"strings"
	"unicode"
)

// defaultGenericPrefixes are the title words stripped from the front of a
// name before matching. French and Italian producers interchange these
// freely, so they carry no discriminating signal.
var defaultGenericPrefixes = []string{
	"chateau", "chateaux", "domaine", "domaines", "dom", "clos", "maison",
}

// defaultStopWords are variants excluded from the fuzzy-match candidate set.
var defaultStopWords = []string{
	"chateau", "domaine", "dom", "clos", "maison",
}

// defaultMinVariantLen is the floor below which a variant is too ambiguous
// to serve as a match key.
const defaultMinVariantLen = 4

// Rules carries the configurable vocabulary driving prefix stripping and
// variant generation. Construct with DefaultRules and override from config.
type Rules struct {
	genericPrefixes map[string]struct{}
	stopWords       map[string]struct{}
	minVariantLen   int
}

// DefaultRules returns rules with the stock generic-word vocabulary.
func DefaultRules() Rules {
	return NewRules(defaultGenericPrefixes, defaultStopWords, defaultMinVariantLen)
}

// NewRules builds rules from explicit word lists. Empty lists and a
// non-positive length floor fall back to the defaults.
func NewRules(genericPrefixes, stopWords []string, minVariantLen int) Rules {
	if len(genericPrefixes) == 0 {
		genericPrefixes = defaultGenericPrefixes
	}
	if len(stopWords) == 0 {
		stopWords = defaultStopWords
	}
	if minVariantLen <= 0 {
		minVariantLen = defaultMinVariantLen
	}
	return Rules{
		genericPrefixes: wordSet(genericPrefixes),
		stopWords:       wordSet(stopWords),
		minVariantLen:   minVariantLen,
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(FoldToASCII(w)))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// StripGenericPrefix removes a leading generic title word from name. The
// first word is compared in folded lowercase with trailing dots removed, so
// "Château", "chateau" and "Dom." all strip. A name consisting only of a
// generic word collapses to the empty string; anything else passes through
// trimmed but otherwise unchanged.
func (r Rules) StripGenericPrefix(name string) string {
	stripped := strings.TrimSpace(name)
	if stripped == "" {
		return stripped
	}
	first := stripped
	rest := ""
	if idx := strings.IndexFunc(stripped, unicode.IsSpace); idx >= 0 {
		first = stripped[:idx]
		rest = strings.TrimSpace(stripped[idx:])
	}
	folded := strings.TrimRight(strings.ToLower(FoldToASCII(first)), ".")
	if _, ok := r.genericPrefixes[folded]; !ok {
		return stripped
	}
	return rest
}

// SearchName returns the retrieval query form of a name: the generic prefix
// stripped, falling back to the original when stripping leaves nothing.
func (r Rules) SearchName(name string) string {
	stripped := strings.TrimSpace(name)
	if stripped == "" {
		return stripped
	}
	if base := r.StripGenericPrefix(stripped); base != "" {
		return base
	}
	return stripped
}

// NormalizeLoose produces the space-joined retrieval form of a name:
// ASCII-folded, punctuation collapsed, generic prefix stripped, lowercased.
// Unlike Normalize it keeps words space-separated, which reads better as a
// free-text retrieval query.
func (r Rules) NormalizeLoose(name string) string {
	cleaned := spaceNonWord(FoldToASCII(name))
	collapsed := strings.Join(strings.Fields(cleaned), " ")
	return strings.ToLower(r.StripGenericPrefix(collapsed))
}

// Variants expands a normalized hyphen-joined token into its fuzzy-match
// candidate set: every hyphen-rejoined prefix and suffix run of the token's
// words, minus stop words and anything shorter than the length floor.
// Candidates are ordered longest first so callers try the most specific
// variant before weaker ones.
func (r Rules) Variants(token string) []string {
	if token == "" {
		return nil
	}
	parts := strings.Split(token, "-")
	seen := make(map[string]struct{})
	for i := len(parts); i >= 1; i-- {
		seen[strings.Join(parts[:i], "-")] = struct{}{}
	}
	for i := 0; i < len(parts); i++ {
		seen[strings.Join(parts[i:], "-")] = struct{}{}
	}
	variants := make([]string, 0, len(seen))
	for v := range seen {
		if len(v) < r.minVariantLen {
			continue
		}
		if _, stop := r.stopWords[v]; stop {
			continue
		}
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool {
		if len(variants[i]) != len(variants[j]) {
			return len(variants[i]) > len(variants[j])
		}
		return variants[i] < variants[j]
	})
	return variants
}

// MatchesVariant reports whether text starts with variant terminating on a
// word boundary. The boundary requirement is the anti-false-positive guard:
// a variant must be followed by a hyphen, a space, or the end of the text,
// never a mid-word continuation.
func MatchesVariant(text, variant string) bool {
	if text == "" || variant == "" {
		return false
	}
	if !strings.HasPrefix(text, variant) {
		return false
	}
	rest := text[len(variant):]
	return rest == "" || rest[0] == '-' || rest[0] == ' '
}
