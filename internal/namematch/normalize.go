package namematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// quoteFolder maps typographic quote variants onto a straight apostrophe.
var quoteFolder = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"‚", "'", // single low-9 quotation mark
	"‛", "'", // single high-reversed-9 quotation mark
	"′", "'", // prime
	"`", "'", // grave accent
	"´", "'", // acute accent
)

// dashFolder maps Unicode dash variants onto an ASCII hyphen.
var dashFolder = strings.NewReplacer(
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"—", "-",
	"―", "-",
)

// foldASCII decomposes to NFKD, drops combining marks, and discards any
// remaining non-ASCII runes, leaving only base ASCII letters.
var foldASCII = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// FoldToASCII strips diacritics and non-ASCII runes from s.
func FoldToASCII(s string) string {
	folded, _, err := transform.String(foldASCII, s)
	if err != nil {
		return s
	}
	return folded
}

// Normalize canonicalizes an arbitrary wine or producer string into the
// hyphen-joined comparison token: quote and dash variants folded, diacritics
// stripped, punctuation collapsed to word breaks, lowercased. The result is
// stable under repeated application.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = quoteFolder.Replace(text)
	text = dashFolder.Replace(text)
	cleaned := spaceNonWord(FoldToASCII(text))
	return strings.Join(strings.Fields(strings.ToLower(cleaned)), "-")
}

// spaceNonWord replaces every rune that is not alphanumeric or whitespace
// with a single space.
func spaceNonWord(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
