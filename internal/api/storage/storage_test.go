package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cuongbtq/job-assistant/internal/api/domain"
	"github.com/cuongbtq/job-assistant/internal/api/model"
	"github.com/cuongbtq/job-assistant/shared/postgresql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := postgresql.NewClientFromDB(sqlx.NewDb(db, "sqlmock"), &postgresql.Config{}, logger)
	return NewStorage(client), mock
}

func TestStorage_ListJobs(t *testing.T) {
	s, mock := newMockStorage(t)

	rows := sqlmock.NewRows([]string{"job_id", "job_name", "status"}).
		AddRow("41", "Data Sync", "running").
		AddRow("42", "Nightly Build", "failed")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT job_id::text AS job_id, job_name, status FROM jobs ORDER BY job_id")).
		WillReturnRows(rows)

	jobs, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Job{
		{JobID: "41", JobName: "Data Sync", Status: "running"},
		{JobID: "42", JobName: "Nightly Build", Status: "failed"},
	}, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ListJobs_Empty(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery("FROM jobs").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "job_name", "status"}))

	jobs, err := s.ListJobs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestStorage_ListJobs_Error(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery("FROM jobs").WillReturnError(errors.New("connection reset"))

	jobs, err := s.ListJobs(context.Background())
	require.Error(t, err)
	assert.Nil(t, jobs)
	assert.Contains(t, err.Error(), "failed to list jobs")
}

func TestStorage_GetJobStatusByID(t *testing.T) {
	query := regexp.QuoteMeta("SELECT status FROM jobs WHERE job_id::text = $1 LIMIT 1")

	t.Run("found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("42").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("failed"))

		status, err := s.GetJobStatusByID(context.Background(), "42")
		require.NoError(t, err)
		assert.Equal(t, "failed", status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("7").
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		_, err := s.GetJobStatusByID(context.Background(), "7")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("42").WillReturnError(errors.New("timeout"))

		_, err := s.GetJobStatusByID(context.Background(), "42")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrJobNotFound)
		assert.Contains(t, err.Error(), "timeout")
	})
}

func TestStorage_GetJobStatusByName(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT status FROM jobs WHERE job_name ILIKE $1`)

	t.Run("substring match", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("%nightly%").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("failed"))

		status, err := s.GetJobStatusByName(context.Background(), "nightly")
		require.NoError(t, err)
		assert.Equal(t, "failed", status)
	})

	t.Run("wildcards are escaped", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs(`%100\%\_done%`).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))

		_, err := s.GetJobStatusByName(context.Background(), "100%_done")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs("%ghost%").
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		_, err := s.GetJobStatusByName(context.Background(), "ghost")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}

func TestStorage_GetJob(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery("WHERE job_id::text = ").WithArgs("42").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "job_name", "status"}).AddRow("42", "Nightly Build", "failed"))
	mock.ExpectQuery("WHERE job_id::text = ").WithArgs("43").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "job_name", "status"}))

	job, err := s.GetJob(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Nightly Build", job.JobName)

	_, err = s.GetJob(context.Background(), "43")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestStorage_ListJobsPage(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("AND LOWER(status) = LOWER($1) AND job_id::text > $2 ORDER BY job_id::text ASC LIMIT $3")).
		WithArgs("failed", "41", 3).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "job_name", "status"}).AddRow("42", "Nightly Build", "failed"))

	jobs, err := s.ListJobsPage(context.Background(), JobFilter{
		Status:   "failed",
		PageSize: 2,
		Cursor:   &JobCursor{JobID: "41"},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "42", jobs[0].JobID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
