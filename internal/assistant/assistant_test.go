package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cuongbtq/job-assistant/internal/api/domain"
	"github.com/cuongbtq/job-assistant/internal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssistant_Answer_Greeting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		userName string
		want     string
	}{
		{"named", "hi", "Sam", "Hello Sam, how can I assist you today?"},
		{"anonymous", "Good morning", "", "Hello! How can I assist you today?"},
		{"name is trimmed", "hello", "  Sam ", "Hello Sam, how can I assist you today?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
			a := newTestAssistant(store, llm, engine)

			reply, err := a.Answer(context.Background(), tt.input, tt.userName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
			assert.Equal(t, KindGreeting, reply.Kind)
			assert.Equal(t, StrategyNone, reply.Strategy)

			// greetings never touch the store or the model
			store.AssertExpectations(t)
			assert.Empty(t, store.Calls)
			assert.Empty(t, llm.Calls)
			assert.Empty(t, engine.Calls)
		})
	}
}

func TestAssistant_Answer_ByID(t *testing.T) {
	const input = "What is the status of job 42?"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(sampleJobs, nil)
	store.On("GetJobStatusByID", mock.Anything, "42").Return("failed", nil)
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{JobID: "42"}, nil)
	llm.On("GenerateReply", mock.Anything, input, "The status of the job with job_id 42 is: failed").
		Return("  Job 42 has failed.\n", nil)
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, "Job 42 has failed.", reply.Text)
	assert.Equal(t, KindInquiry, reply.Kind)
	assert.Equal(t, StrategyJobID, reply.Strategy)

	store.AssertExpectations(t)
	llm.AssertExpectations(t)
	store.AssertNotCalled(t, "GetJobStatusByName", mock.Anything, mock.Anything)
	assert.Empty(t, engine.Calls)
}

func TestAssistant_Answer_NameMiss(t *testing.T) {
	const input = "How is the Ghost job doing?"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(sampleJobs, nil)
	store.On("GetJobStatusByName", mock.Anything, "Ghost").Return("", domain.ErrJobNotFound)
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{JobName: `"Ghost"`}, nil)
	llm.On("GenerateReply", mock.Anything, input, "No job found with the name 'Ghost'.").
		Return("I could not find a job named Ghost.", nil)
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, "I could not find a job named Ghost.", reply.Text)
	assert.Equal(t, StrategyJobName, reply.Strategy)
	assert.Empty(t, engine.Calls)
}

func TestAssistant_Answer_SemanticEmptySnapshot(t *testing.T) {
	const input = "list failed jobs"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return([]model.Job{}, nil)
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{}, nil)
	engine.On("Filter", mock.Anything, []model.Job{}, mock.Anything).Return([]model.Job{}, nil)
	llm.On("GenerateReply", mock.Anything, input, "No relevant data found for the query.").
		Return("There are no matching jobs.", nil)
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, "There are no matching jobs.", reply.Text)
	assert.Equal(t, StrategySemantic, reply.Strategy)
	engine.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssistant_Answer_SnapshotFailureStillAnswers(t *testing.T) {
	const input = "list failed jobs"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(nil, errors.New("relation \"jobs\" does not exist"))
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{}, nil)
	engine.On("Filter", mock.Anything, []model.Job{}, mock.Anything).Return([]model.Job{}, nil)
	llm.On("GenerateReply", mock.Anything, input, "No relevant data found for the query.").
		Return("Nothing found.", nil)
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, "Nothing found.", reply.Text)
}

func TestAssistant_Answer_ExtractionError(t *testing.T) {
	const input = "status of job 42"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(sampleJobs, nil)
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{}, errors.New("model unavailable"))
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "Sam")
	require.Error(t, err)
	assert.Nil(t, reply)

	var internalErr *InternalError
	require.ErrorAs(t, err, &internalErr)
	assert.Contains(t, err.Error(), "model unavailable")
	llm.AssertNotCalled(t, "GenerateReply", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssistant_Answer_PersonalizedOnce(t *testing.T) {
	const input = "status of job 42"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(sampleJobs, nil)
	store.On("GetJobStatusByID", mock.Anything, "42").Return("failed", nil)
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{JobID: "42"}, nil)
	llm.On("GenerateReply", mock.Anything, input, mock.Anything).Return("Job 42 has failed.", nil)
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "Sam")
	require.NoError(t, err)
	assert.Equal(t, "Hello Sam, Job 42 has failed.", reply.Text)
	assert.Equal(t, 1, strings.Count(reply.Text, "Sam"))
}

func TestAssistant_Answer_ReplyFailure(t *testing.T) {
	const input = "status of job 42"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(sampleJobs, nil)
	store.On("GetJobStatusByID", mock.Anything, "42").Return("failed", nil)
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{JobID: "42"}, nil)
	llm.On("GenerateReply", mock.Anything, input, mock.Anything).Return("", errors.New("rate limited"))
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "Sam")
	require.NoError(t, err)
	assert.Equal(t, "Hello Sam, Error generating final response: rate limited", reply.Text)
}

func TestAssistant_Answer_StoreFailureIsReplyText(t *testing.T) {
	const input = "status of job 42"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(sampleJobs, nil)
	store.On("GetJobStatusByID", mock.Anything, "42").Return("", errors.New("connection refused"))
	llm.On("ExtractEntities", mock.Anything, input).Return(Entities{JobID: "42", JobName: "Nightly Build"}, nil)
	llm.On("GenerateReply", mock.Anything, input, "Error retrieving job status by job_id: connection refused").
		Return("Sorry, the job database is unavailable.", nil)
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, the job database is unavailable.", reply.Text)
	store.AssertNotCalled(t, "GetJobStatusByName", mock.Anything, mock.Anything)
	assert.Empty(t, engine.Calls)
}

func TestAssistant_Answer_PanicIsInternalError(t *testing.T) {
	const input = "status of job 42"

	store, llm, engine := new(mockStore), new(mockModel), new(mockEngine)
	store.On("ListJobs", mock.Anything).Return(sampleJobs, nil)
	llm.On("ExtractEntities", mock.Anything, input).Panic("nil pointer")
	a := newTestAssistant(store, llm, engine)

	reply, err := a.Answer(context.Background(), input, "")
	assert.Nil(t, reply)
	var internalErr *InternalError
	assert.ErrorAs(t, err, &internalErr)
}
