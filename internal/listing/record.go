package listing

import "strings"

// Record is one wine parsed from a listing file. Score is nil while the
// wine is unrated; once set it is always within [1,4]. RawLine holds the
// unrated textual form exactly as read so serialization round-trips.
type Record struct {
	RawLine  string
	Date     string
	Producer string
	WineName string
	Vintage  string
	Price    string
	Score    *int
	Reason   string
}

// Rated reports whether the record already carries a score.
func (r *Record) Rated() bool {
	return r.Score != nil
}

// SetScore marks the record rated, clamping the score into [1,4].
func (r *Record) SetScore(score int, reason string) {
	clamped := ClampScore(score)
	r.Score = &clamped
	r.Reason = strings.TrimSpace(reason)
}

// Line renders the record in serialized listing form.
func (r *Record) Line() string {
	if r.Score == nil {
		return r.RawLine
	}
	line := r.RawLine + " [" + Stars(*r.Score) + "]"
	if r.Reason != "" {
		line += " (" + r.Reason + ")"
	}
	return line
}

// ClampScore bounds a score into the valid [1,4] range.
func ClampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 4 {
		return 4
	}
	return score
}

// Stars renders a score as its star marker.
func Stars(score int) string {
	return strings.Repeat("★", ClampScore(score))
}
