package fulfillment

import (
	"context"
	"errors"

	"saylani-fulfillment/internal/log"
	"saylani-fulfillment/internal/metrics"
)

// FallbackApology replaces the generative answer on timeout or failure.
const FallbackApology = "Sorry, I'm having trouble answering that right now. Please try again in a moment."

func (f *Fulfiller) answerWithAI(ctx context.Context, a *Agent) {
	a.Add(f.complete(ctx, a.Query))
}

// complete races the completion against the configured timeout. A late
// answer is discarded; the call's context is cancelled when the race is lost.
func (f *Fulfiller) complete(ctx context.Context, query string) string {
	logger := log.WithComponent("fallback")
	if f.completer == nil || query == "" {
		metrics.FallbackTotal.WithLabelValues("error").Inc()
		return FallbackApology
	}

	ctx, cancel := context.WithTimeout(ctx, f.aiTimeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := f.completer.Complete(ctx, query)
		ch <- result{text: text, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil || r.text == "" {
			outcome := "error"
			if errors.Is(r.err, context.DeadlineExceeded) {
				outcome = "timeout"
			}
			metrics.FallbackTotal.WithLabelValues(outcome).Inc()
			logger.Warn().Err(r.err).Msg("completion failed")
			return FallbackApology
		}
		metrics.FallbackTotal.WithLabelValues("answered").Inc()
		return r.text
	case <-ctx.Done():
		metrics.FallbackTotal.WithLabelValues("timeout").Inc()
		logger.Warn().Dur("timeout", f.aiTimeout).Msg("completion timed out")
		return FallbackApology
	}
}
