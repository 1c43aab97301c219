package assistant

import (
	"context"

	"github.com/cuongbtq/job-assistant/internal/api/model"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]model.Job)
	return jobs, args.Error(1)
}

func (m *mockStore) GetJobStatusByID(ctx context.Context, jobID string) (string, error) {
	args := m.Called(ctx, jobID)
	return args.String(0), args.Error(1)
}

func (m *mockStore) GetJobStatusByName(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

type mockModel struct {
	mock.Mock
}

func (m *mockModel) ExtractEntities(ctx context.Context, text string) (Entities, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(Entities), args.Error(1)
}

func (m *mockModel) GenerateReply(ctx context.Context, question, facts string) (string, error) {
	args := m.Called(ctx, question, facts)
	return args.String(0), args.Error(1)
}

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Filter(ctx context.Context, rows []model.Job, predicate string) ([]model.Job, error) {
	args := m.Called(ctx, rows, predicate)
	jobs, _ := args.Get(0).([]model.Job)
	return jobs, args.Error(1)
}

func (m *mockEngine) Aggregate(ctx context.Context, rows []model.Job, instruction string) ([]string, error) {
	args := m.Called(ctx, rows, instruction)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}
