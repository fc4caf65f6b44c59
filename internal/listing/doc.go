// Package listing parses and serializes wine-release listing files.
//
// A listing is plain text with one wine per line in the form
// "[date] Producer - WineName Vintage (Price)" (the vintage is optional).
// Rated lines carry a trailing " [★★★]" or " [3]" marker, optionally
// followed by a parenthesized reason. Both marker forms are accepted on
// read; the star form is always written. The unrated portion of each line
// is preserved verbatim so a rewrite never disturbs text it did not add.
package listing
