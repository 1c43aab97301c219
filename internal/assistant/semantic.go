package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/api/model"
)

const (
	noRelevantData    = "No relevant data found for the query."
	noAggregateResult = "No aggregated results found."
)

// semanticAnswer filters the snapshot down to rows relevant to query, then asks
// the engine for a single summary of them. Engine failures, panics included,
// become a failed result.
func (a *Assistant) semanticAnswer(ctx context.Context, query string, snapshot []model.Job) (result RetrievalResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Semantic engine panicked",
				slog.String("query", query),
				slog.Any("panic", r),
			)
			result = semanticFailure(fmt.Errorf("%v", r))
		}
	}()

	filtered, err := a.engine.Filter(ctx, snapshot, fmt.Sprintf("{status} indicates relevance to %s", query))
	if err != nil {
		a.logger.Error("Semantic filter failed",
			slog.String("query", query),
			slog.Any("error", err),
		)
		return semanticFailure(err)
	}

	if len(filtered) == 0 {
		a.logger.Warn("No relevant data for query",
			slog.String("query", query),
			slog.Int("snapshot_size", len(snapshot)),
		)
		return RetrievalResult{Strategy: StrategySemantic, Outcome: OutcomeEmpty, Text: noRelevantData}
	}

	outputs, err := a.engine.Aggregate(ctx, filtered, fmt.Sprintf("Given each {job_name} and its {status}, %s", query))
	if err != nil {
		a.logger.Error("Semantic aggregate failed",
			slog.String("query", query),
			slog.Any("error", err),
		)
		return semanticFailure(err)
	}

	if len(outputs) == 0 {
		a.logger.Warn("Aggregated result is empty",
			slog.String("query", query),
			slog.Int("filtered", len(filtered)),
		)
		return RetrievalResult{Strategy: StrategySemantic, Outcome: OutcomeEmpty, Text: noAggregateResult}
	}

	return RetrievalResult{Strategy: StrategySemantic, Outcome: OutcomeFound, Text: outputs[0]}
}

func semanticFailure(err error) RetrievalResult {
	return RetrievalResult{
		Strategy: StrategySemantic,
		Outcome:  OutcomeFailed,
		Text:     fmt.Sprintf("Error using semantic engine: %v", err),
	}
}
