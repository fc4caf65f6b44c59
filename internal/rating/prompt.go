package rating

import "fmt"

// ratingPrompt captures the instructions sent to the reasoning service when
// scoring a wine. Keep updates centralized here so it is easy to tweak the
// rubric without hunting through call sites.
const ratingPrompt = `Rate this wine 1-4 stars. Use the wine guide as your primary source, supplemented by your own expertise. Search the web for producers you're unsure about.

Wine guide context (if available):
%s

Wine: %s - %s %s (%s)

Scale: 4=iconic/Grand Cru, 3=very good, 2=decent, 1=skip.

Rules:
- Match the guide's star rating for the producer if present (★→1, ★★→2, ★★★→3, ★★★★→4). Deviate +1 only for Grand Cru or exceptional site.
- Appellation hierarchy matters: Regional < Village < Premier Cru < Grand Cru.
- Guide vintages marked with ' are especially good years.

Reason: max 5 words. Don't repeat producer/wine/appellation names. Don't reference the guide. Be specific — what makes this wine worth buying or skipping.

Respond ONLY with JSON: {"score": <1-4>, "reason": "<5 words max>"}`

// renderPrompt fills the rating template with the context block and wine
// facts.
func renderPrompt(context, producer, wineName, vintage, price string) string {
	return fmt.Sprintf(ratingPrompt, context, producer, wineName, vintage, price)
}
