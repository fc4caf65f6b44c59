package rating

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cellar/internal/listing"
	"cellar/internal/logging"
	"cellar/internal/services"
)

// defaultCallTimeout bounds one reasoning-service invocation.
const defaultCallTimeout = 120 * time.Second

// CompletionClient is a reasoning backend: one prompt in, raw text out.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ContextProvider resolves guide context for a producer and wine name.
type ContextProvider interface {
	Context(ctx context.Context, producer, wineName string) (string, error)
}

// Outcome is one rating result. Degraded marks the fixed fallback emitted
// for unparseable responses, distinct from any text the model returned.
type Outcome struct {
	Score    int
	Reason   string
	Degraded bool
}

// Invoker rates individual wines against retrieved guide context.
type Invoker struct {
	contexts  ContextProvider
	completer CompletionClient
	timeout   time.Duration
	logger    *slog.Logger
}

// NewInvoker constructs an invoker. A non-positive timeout falls back to
// the 120s default.
func NewInvoker(contexts ContextProvider, completer CompletionClient, timeout time.Duration, logger *slog.Logger) *Invoker {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Invoker{
		contexts:  contexts,
		completer: completer,
		timeout:   timeout,
		logger:    logging.NewComponentLogger(logger, "rating"),
	}
}

// Rate scores one wine. Retrieval and completion failures return an error
// for the caller's degradation policy; parse failures never do — they
// resolve to the fixed degraded outcome so an unparseable answer cannot
// block the batch.
func (inv *Invoker) Rate(ctx context.Context, rec *listing.Record) (Outcome, error) {
	guideContext, err := inv.contexts.Context(ctx, rec.Producer, rec.WineName)
	if err != nil {
		return Outcome{}, fmt.Errorf("rate %s: %w", rec.Producer, err)
	}

	prompt := renderPrompt(guideContext, rec.Producer, rec.WineName, rec.Vintage, rec.Price)

	callCtx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()
	response, err := inv.completer.Complete(callCtx, prompt)
	if err != nil {
		return Outcome{}, fmt.Errorf("rate %s: %w", rec.Producer, err)
	}

	out := parseResponse(response)
	if out.Degraded {
		logger := inv.logger
		if runID, ok := services.RunIDFromContext(ctx); ok {
			logger = logger.With(logging.String(logging.FieldRunID, runID))
		}
		logger.Warn("unparseable rating response",
			logging.String(logging.FieldProducer, rec.Producer),
			logging.String(logging.FieldWine, rec.WineName))
	}
	return out, nil
}
