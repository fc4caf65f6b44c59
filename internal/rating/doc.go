// Package rating scores one wine at a time: it gathers guide context,
// renders the rating prompt, invokes a reasoning backend, and parses the
// response into a bounded score with a short justification.
//
// Parsing is defensive by policy: any malformed response degrades to a
// fixed mediocre score instead of failing, so one unparseable answer never
// blocks the batch. Transport and retrieval failures do propagate — the
// pipeline owns what happens to those.
package rating
