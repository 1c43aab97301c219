package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cuongbtq/job-assistant/internal/api/domain"
	"github.com/cuongbtq/job-assistant/internal/api/model"
	"github.com/cuongbtq/job-assistant/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// Storage reads the jobs table. Every method is a single statement on the
// shared pool, so one Storage serves all requests concurrently.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// job_id is compared as text so integer and text columns behave the same
const jobColumns = `job_id::text AS job_id, job_name, status`

// ListJobs loads the whole job table
func (s *Storage) ListJobs(ctx context.Context) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY job_id`

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// GetJobStatusByID returns the status of the job with the exact id
func (s *Storage) GetJobStatusByID(ctx context.Context, jobID string) (string, error) {
	query := `SELECT status FROM jobs WHERE job_id::text = $1 LIMIT 1`

	var status string
	err := s.db.GetContext(ctx, &status, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrJobNotFound
		}
		return "", fmt.Errorf("failed to get job status by id: %w", err)
	}

	return status, nil
}

// GetJobStatusByName returns the status of the first job whose name contains
// name, ignoring case
func (s *Storage) GetJobStatusByName(ctx context.Context, name string) (string, error) {
	query := `SELECT status FROM jobs WHERE job_name ILIKE $1 ESCAPE '\' ORDER BY job_id LIMIT 1`

	var status string
	err := s.db.GetContext(ctx, &status, query, "%"+escapeLike(name)+"%")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrJobNotFound
		}
		return "", fmt.Errorf("failed to get job status by name: %w", err)
	}

	return status, nil
}

// GetJob returns a single job by id
func (s *Storage) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id::text = $1`

	var job model.Job
	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

type JobFilter struct {
	Status   string
	PageSize int
	Cursor   *JobCursor
}

// JobCursor marks the last job_id of the previous page
type JobCursor struct {
	JobID string
}

// ListJobsPage returns up to filter.PageSize+1 jobs after the cursor; the
// extra row tells the caller whether another page exists
func (s *Storage) ListJobsPage(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND LOWER(status) = LOWER($%d)", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND job_id::text > $%d", argIdx)
		args = append(args, filter.Cursor.JobID)
		argIdx++
	}

	query += " ORDER BY job_id::text ASC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes name match literally inside a LIKE pattern
func escapeLike(name string) string {
	return likeEscaper.Replace(name)
}
