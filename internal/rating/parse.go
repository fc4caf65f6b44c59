package rating

import (
	"encoding/json"
	"strings"

	"cellar/internal/listing"
)

// Degraded is the fixed fallback emitted when a response cannot be parsed.
// Scoring an un-ratable wine as mediocre keeps the batch moving; the reason
// text makes the degradation visible in the listing.
const (
	DegradedScore  = 2
	DegradedReason = "Could not parse response"
)

type ratingPayload struct {
	Score  *json.Number `json:"score"`
	Reason string       `json:"reason"`
}

// parseResponse extracts a score and reason from raw model output,
// tolerating code fences and surrounding prose. Every failure mode —
// missing JSON, missing score, non-numeric score — collapses to the fixed
// degraded outcome; this function cannot fail.
func parseResponse(raw string) Outcome {
	degraded := Outcome{Score: DegradedScore, Reason: DegradedReason, Degraded: true}

	text := stripCodeFence(strings.TrimSpace(raw))
	candidate := extractObject(text)
	if candidate == "" {
		candidate = text
	}

	var payload ratingPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil || payload.Score == nil {
		return degraded
	}
	value, err := payload.Score.Int64()
	if err != nil {
		// Tolerate models emitting "3.0".
		f, ferr := payload.Score.Float64()
		if ferr != nil {
			return degraded
		}
		value = int64(f)
	}

	return Outcome{
		Score:  listing.ClampScore(int(value)),
		Reason: strings.TrimSuffix(strings.TrimSpace(payload.Reason), "."),
	}
}

// stripCodeFence unwraps a ```json … ``` block when present.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimLeft(text[3:], " \t")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
	}
	body = strings.TrimLeft(body, " \t\r\n")
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// extractObject returns the first brace-delimited object in text, or "".
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(text[start:], '}')
	if end < 0 {
		return ""
	}
	return text[start : start+end+1]
}
