package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cuongbtq/job-assistant/internal/api/model"
)

// filterBatchSize bounds how many rows go into one filter prompt
const filterBatchSize = 50

type filterResponse struct {
	Matches []int `json:"matches"`
}

type aggregateResponse struct {
	Answers []string `json:"answers"`
}

// Filter keeps the rows for which predicate holds. predicate may reference
// {job_id}, {job_name} and {status}. Rows are judged in batches, one model
// call per batch; no rows means no call.
func (c *Client) Filter(ctx context.Context, rows []model.Job, predicate string) ([]model.Job, error) {
	kept := []model.Job{}

	for start := 0; start < len(rows); start += filterBatchSize {
		end := min(start+filterBatchSize, len(rows))
		batch := rows[start:end]

		raw, err := c.generate(ctx, request{
			system:    semanticSystemPrompt,
			prompt:    fmt.Sprintf(filterPromptTemplate, predicate, renderRows(batch)),
			maxTokens: semanticMaxTokens,
			schema:    filterSchema,
		})
		if err != nil {
			return nil, fmt.Errorf("semantic filter: %w", err)
		}

		var resp filterResponse
		if err := decodeJSON(raw, &resp); err != nil {
			return nil, fmt.Errorf("semantic filter: %w", err)
		}

		seen := make(map[int]bool, len(resp.Matches))
		for _, idx := range resp.Matches {
			if idx < 0 || idx >= len(batch) || seen[idx] {
				c.logger.Debug("Ignoring filter match",
					slog.Int("index", idx),
					slog.Int("batch_size", len(batch)),
				)
				continue
			}
			seen[idx] = true
		}
		// keep table order regardless of the order the model listed matches in
		for i, row := range batch {
			if seen[i] {
				kept = append(kept, row)
			}
		}
	}

	c.logger.Debug("Semantic filter done",
		slog.Int("rows", len(rows)),
		slog.Int("kept", len(kept)),
	)

	return kept, nil
}

// Aggregate applies instruction across rows and returns the model's answers
func (c *Client) Aggregate(ctx context.Context, rows []model.Job, instruction string) ([]string, error) {
	if len(rows) == 0 {
		return []string{}, nil
	}

	raw, err := c.generate(ctx, request{
		system:    semanticSystemPrompt,
		prompt:    fmt.Sprintf(aggregatePromptTemplate, instruction, renderRows(rows)),
		maxTokens: semanticMaxTokens,
		schema:    aggregateSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("semantic aggregate: %w", err)
	}

	var resp aggregateResponse
	if err := decodeJSON(raw, &resp); err != nil {
		return nil, fmt.Errorf("semantic aggregate: %w", err)
	}

	answers := make([]string, 0, len(resp.Answers))
	for _, a := range resp.Answers {
		if a = strings.TrimSpace(a); a != "" {
			answers = append(answers, a)
		}
	}
	return answers, nil
}

func renderRows(rows []model.Job) string {
	var b strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. job_id=%q job_name=%q status=%q\n", i, row.JobID, row.JobName, row.Status)
	}
	return b.String()
}
