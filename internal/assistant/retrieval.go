package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/api/domain"
	"github.com/cuongbtq/job-assistant/internal/api/model"
)

// Strategy names the retrieval path taken for an inquiry.
type Strategy string

const (
	StrategyNone     Strategy = ""
	StrategyJobID    Strategy = "job_id"
	StrategyJobName  Strategy = "job_name"
	StrategySemantic Strategy = "semantic"
)

// Outcome classifies what a retrieval produced.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeEmpty    Outcome = "empty"
	OutcomeFailed   Outcome = "failed"
)

// RetrievalResult is the single fact handed to the synthesizer.
type RetrievalResult struct {
	Strategy Strategy
	Outcome  Outcome
	Text     string
}

// decide picks the one strategy an inquiry will use: id beats name beats semantic.
// A miss on the chosen strategy never falls through to the next one.
func decide(entities Entities) Strategy {
	switch {
	case entities.JobID != "":
		return StrategyJobID
	case entities.JobName != "":
		return StrategyJobName
	default:
		return StrategySemantic
	}
}

func (a *Assistant) route(ctx context.Context, entities Entities, snapshot []model.Job, query string) RetrievalResult {
	strategy := decide(entities)

	a.logger.Info("Routing inquiry",
		slog.String("strategy", string(strategy)),
		slog.String("job_id", entities.JobID),
		slog.String("job_name", entities.JobName),
		slog.Int("snapshot_size", len(snapshot)),
	)

	switch strategy {
	case StrategyJobID:
		return a.lookupByID(ctx, entities.JobID)
	case StrategyJobName:
		return a.lookupByName(ctx, entities.JobName)
	default:
		return a.semanticAnswer(ctx, query, snapshot)
	}
}

func (a *Assistant) lookupByID(ctx context.Context, jobID string) RetrievalResult {
	status, err := a.store.GetJobStatusByID(ctx, jobID)
	switch {
	case err == nil:
		return RetrievalResult{
			Strategy: StrategyJobID,
			Outcome:  OutcomeFound,
			Text:     fmt.Sprintf("The status of the job with job_id %s is: %s", jobID, status),
		}
	case errors.Is(err, domain.ErrJobNotFound):
		return RetrievalResult{
			Strategy: StrategyJobID,
			Outcome:  OutcomeNotFound,
			Text:     fmt.Sprintf("No job found with job_id %s.", jobID),
		}
	default:
		a.logger.Error("Failed to retrieve job status by job_id",
			slog.String("job_id", jobID),
			slog.Any("error", err),
		)
		return RetrievalResult{
			Strategy: StrategyJobID,
			Outcome:  OutcomeFailed,
			Text:     fmt.Sprintf("Error retrieving job status by job_id: %v", err),
		}
	}
}

func (a *Assistant) lookupByName(ctx context.Context, name string) RetrievalResult {
	status, err := a.store.GetJobStatusByName(ctx, name)
	switch {
	case err == nil:
		return RetrievalResult{
			Strategy: StrategyJobName,
			Outcome:  OutcomeFound,
			Text:     fmt.Sprintf("The status of the job '%s' is: %s", name, status),
		}
	case errors.Is(err, domain.ErrJobNotFound):
		return RetrievalResult{
			Strategy: StrategyJobName,
			Outcome:  OutcomeNotFound,
			Text:     fmt.Sprintf("No job found with the name '%s'.", name),
		}
	default:
		a.logger.Error("Failed to retrieve job status by job_name",
			slog.String("job_name", name),
			slog.Any("error", err),
		)
		return RetrievalResult{
			Strategy: StrategyJobName,
			Outcome:  OutcomeFailed,
			Text:     fmt.Sprintf("Error retrieving job status by job_name: %v", err),
		}
	}
}

// loadSnapshot reads the job table for one inquiry. A failed read yields an
// empty snapshot so the inquiry can still be answered.
func (a *Assistant) loadSnapshot(ctx context.Context) []model.Job {
	jobs, err := a.store.ListJobs(ctx)
	if err != nil {
		a.logger.Error("Failed to load job snapshot",
			slog.Any("error", err),
		)
		return []model.Job{}
	}

	a.logger.Debug("Job snapshot loaded",
		slog.Int("jobs", len(jobs)),
	)
	return jobs
}
