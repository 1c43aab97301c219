package llm

import (
	"context"
	"fmt"
)

// GenerateReply has the model phrase facts as an answer to question
func (c *Client) GenerateReply(ctx context.Context, question, facts string) (string, error) {
	return c.generate(ctx, request{
		system:    jobTrackingSystemPrompt,
		prompt:    fmt.Sprintf(replyPromptTemplate, question, facts),
		maxTokens: replyMaxTokens,
	})
}
