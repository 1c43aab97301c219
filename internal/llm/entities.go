package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/assistant"
)

// ExtractEntities asks the model for the job id and job name mentioned in
// text. A response that cannot be decoded counts as "nothing mentioned"; only
// a failed call is an error.
func (c *Client) ExtractEntities(ctx context.Context, text string) (assistant.Entities, error) {
	raw, err := c.generate(ctx, request{
		system:    jobTrackingSystemPrompt,
		prompt:    fmt.Sprintf(extractPromptTemplate, text),
		maxTokens: extractMaxTokens,
		schema:    entitiesSchema,
	})
	if err != nil {
		return assistant.Entities{}, fmt.Errorf("entity extraction: %w", err)
	}

	var entities assistant.Entities
	if err := decodeJSON(raw, &entities); err != nil {
		c.logger.Warn("Could not decode extracted entities",
			slog.String("response", truncate(raw, 200)),
			slog.Any("error", err),
		)
		return assistant.Entities{}, nil
	}

	return entities, nil
}
