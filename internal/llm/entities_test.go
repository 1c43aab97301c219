package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cuongbtq/job-assistant/internal/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExtractEntities(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     assistant.Entities
	}{
		{
			name:     "job id",
			response: `{"job_id": "42", "job_name": null}`,
			want:     assistant.Entities{JobID: "42"},
		},
		{
			name:     "job name",
			response: `{"job_id": null, "job_name": "Nightly Build"}`,
			want:     assistant.Entities{JobName: "Nightly Build"},
		},
		{
			name:     "nothing mentioned",
			response: `{}`,
			want:     assistant.Entities{},
		},
		{
			name:     "undecodable response",
			response: `Sorry, I cannot help with that.`,
			want:     assistant.Entities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{responses: []string{tt.response}}
			c := newTestClient(gen)

			got, err := c.ExtractEntities(context.Background(), "What is the status of job 42?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, gen.calls, 1)
			assert.Contains(t, gen.calls[0].prompt, "The user said: 'What is the status of job 42?'")
			assert.Equal(t, int32(extractMaxTokens), gen.calls[0].config.MaxOutputTokens)
			assert.Same(t, entitiesSchema, gen.calls[0].config.ResponseSchema)
		})
	}
}

func TestClient_ExtractEntities_Error(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("unavailable")}
	c := newTestClient(gen)

	_, err := c.ExtractEntities(context.Background(), "status of job 42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestClient_GenerateReply(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"Job 42 has failed."}}
	c := newTestClient(gen)

	reply, err := c.GenerateReply(context.Background(), "job 42?", "The status of the job with job_id 42 is: failed")
	require.NoError(t, err)
	assert.Equal(t, "Job 42 has failed.", reply)

	require.Len(t, gen.calls, 1)
	assert.Equal(t,
		"The user asked: job 42?. Based on the database query, here is the relevant information: The status of the job with job_id 42 is: failed. Generate a polite and helpful response based on this information.",
		gen.calls[0].prompt,
	)
	assert.Equal(t, int32(replyMaxTokens), gen.calls[0].config.MaxOutputTokens)
	assert.Nil(t, gen.calls[0].config.ResponseSchema)
	assert.Equal(t, jobTrackingSystemPrompt, gen.calls[0].config.SystemInstruction.Parts[0].Text)
}

func TestClient_GenerateReply_Error(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	c := newTestClient(gen)

	_, err := c.GenerateReply(context.Background(), "q", "facts")
	assert.Error(t, err)
}
