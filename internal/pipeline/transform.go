package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/flightwx/briefing-engine/internal/briefing"
)

// HistoryStore persists advisory results for later review. A nil store
// disables history.
type HistoryStore interface {
	SaveResult(ctx context.Context, result *briefing.Result) error
}

// BriefingTransformer implements Transformer by running the briefing engine
// over each request, with optional result-history persistence.
type BriefingTransformer struct {
	runner  *briefing.Runner
	history HistoryStore
	logger  *slog.Logger
}

// NewTransformer creates a BriefingTransformer. Pass a nil history store to
// disable persistence.
func NewTransformer(runner *briefing.Runner, history HistoryStore, logger *slog.Logger) *BriefingTransformer {
	return &BriefingTransformer{runner: runner, history: history, logger: logger}
}

func (t *BriefingTransformer) Transform(ctx context.Context, raw briefing.RawMessage) (briefing.OutputMessage, error) {
	var req briefing.Request
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return briefing.OutputMessage{}, fmt.Errorf("parse briefing request: %w", err)
	}

	result, err := t.runner.Run(req)
	if err != nil {
		return briefing.OutputMessage{}, fmt.Errorf("run briefing: %w", err)
	}

	// History is best-effort: a persistence failure never fails the briefing.
	if t.history != nil {
		if err := t.history.SaveResult(ctx, result); err != nil {
			t.logger.Warn("history save failed", "briefing_id", result.ID, "error", err)
		}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return briefing.OutputMessage{}, fmt.Errorf("serialize briefing result: %w", err)
	}
	return briefing.OutputMessage{
		Key:   []byte(result.ID),
		Value: data,
		Headers: map[string]string{
			"briefing_id":  result.ID,
			"generated_at": result.GeneratedAt.Format(time.RFC3339),
		},
	}, nil
}
