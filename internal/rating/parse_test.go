package rating

import "testing"

func TestParseResponsePlainJSON(t *testing.T) {
	out := parseResponse(`{"score": 3, "reason": "silky structured tannins."}`)
	if out.Score != 3 {
		t.Fatalf("score = %d, want 3", out.Score)
	}
	if out.Reason != "silky structured tannins" {
		t.Fatalf("reason = %q, trailing period should be stripped", out.Reason)
	}
	if out.Degraded {
		t.Fatal("clean response marked degraded")
	}
}

func TestParseResponseCodeFence(t *testing.T) {
	raw := "```json\n{\"score\": 4, \"reason\": \"benchmark Grand Cru\"}\n```"
	out := parseResponse(raw)
	if out.Score != 4 || out.Reason != "benchmark Grand Cru" {
		t.Fatalf("got (%d, %q)", out.Score, out.Reason)
	}
}

func TestParseResponseSurroundingProse(t *testing.T) {
	raw := "Based on the guide, here is my rating: {\"score\": 2, \"reason\": \"simple village level\"} — hope that helps!"
	out := parseResponse(raw)
	if out.Score != 2 || out.Reason != "simple village level" {
		t.Fatalf("got (%d, %q)", out.Score, out.Reason)
	}
}

func TestParseResponseClampsScore(t *testing.T) {
	if out := parseResponse(`{"score": 7}`); out.Score != 4 {
		t.Fatalf("score 7 should clamp to 4, got %d", out.Score)
	}
	if out := parseResponse(`{"score": 0}`); out.Score != 1 {
		t.Fatalf("score 0 should clamp to 1, got %d", out.Score)
	}
}

func TestParseResponseMissingReason(t *testing.T) {
	out := parseResponse(`{"score": 3}`)
	if out.Score != 3 || out.Reason != "" || out.Degraded {
		t.Fatalf("got %+v, want (3, \"\") not degraded", out)
	}
}

func TestParseResponseFloatScore(t *testing.T) {
	if out := parseResponse(`{"score": 3.0}`); out.Score != 3 {
		t.Fatalf("score = %d, want 3", out.Score)
	}
}

func TestParseResponseDegraded(t *testing.T) {
	cases := []string{
		"no json here at all",
		`{"reason": "missing score"}`,
		`{"score": "three"}`,
		"",
		"```json\nnot even json\n```",
	}
	for _, raw := range cases {
		out := parseResponse(raw)
		if !out.Degraded || out.Score != DegradedScore || out.Reason != DegradedReason {
			t.Fatalf("parseResponse(%q) = %+v, want degraded", raw, out)
		}
	}
}

func TestParseResponseReasonMatchingFallbackTextIsNotDegraded(t *testing.T) {
	out := parseResponse(`{"score": 3, "reason": "` + DegradedReason + `"}`)
	if out.Degraded {
		t.Fatal("well-formed response marked degraded because of its reason text")
	}
	if out.Score != 3 || out.Reason != DegradedReason {
		t.Fatalf("got %+v", out)
	}
}
