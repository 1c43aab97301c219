package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-assistant/internal/api/domain"
	"github.com/cuongbtq/job-assistant/internal/api/dto"
	"github.com/cuongbtq/job-assistant/internal/api/storage"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetJob handles GET /api/v1/jobs/:job_id
// Retrieves a single job
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "job_id is required",
		})
		return
	}

	h.logger.Info("GetJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_id", jobID),
	)

	job, err := h.jobs.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "Job not found",
			})
			return
		}
		h.logger.Error("Failed to get job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to get job",
		})
		return
	}

	c.JSON(http.StatusOK, dto.JobDTO{
		JobID:   job.JobID,
		JobName: job.JobName,
		Status:  job.Status,
	})
}

// ListJobs handles GET /api/v1/jobs
// Lists jobs ordered by job_id with optional status filter and cursor pagination
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.logger.Info("ListJobs called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
	)

	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid query parameters",
		})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}

	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		h.logger.Error("Invalid cursor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid cursor",
		})
		return
	}

	h.logger.Debug("Decoded cursor", slog.Any("cursor", cursor))

	filter := storage.JobFilter{
		Status:   req.Status,
		PageSize: req.PageSize,
		Cursor:   cursor,
	}

	jobs, err := h.jobs.ListJobsPage(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to list jobs",
		})
		return
	}

	// one extra row means another page exists
	hasMore := len(jobs) > req.PageSize
	if hasMore {
		jobs = jobs[:req.PageSize]
	}

	jobResponse := make([]dto.JobDTO, len(jobs))
	for i, job := range jobs {
		jobResponse[i] = dto.JobDTO{
			JobID:   job.JobID,
			JobName: job.JobName,
			Status:  job.Status,
		}
	}

	var nextCursor string
	if hasMore {
		lastJob := jobs[len(jobs)-1]
		nextCursor = EncodeJobCursor(&storage.JobCursor{JobID: lastJob.JobID})
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:       jobResponse,
		NextCursor: nextCursor,
	})
}
