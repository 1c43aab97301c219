package assistant

import (
	"context"
	"strings"

	"github.com/cuongbtq/job-assistant/internal/api/model"
)

// JobStore is the read-only view of the job table the assistant needs.
// Implementations must be safe for concurrent use by simultaneous requests.
type JobStore interface {
	// ListJobs returns the whole job table.
	ListJobs(ctx context.Context) ([]model.Job, error)
	// GetJobStatusByID returns domain.ErrJobNotFound when no job has the id.
	GetJobStatusByID(ctx context.Context, jobID string) (string, error)
	// GetJobStatusByName matches name as a case-insensitive substring and
	// returns domain.ErrJobNotFound when nothing matches.
	GetJobStatusByName(ctx context.Context, name string) (string, error)
}

// LanguageModel extracts identifiers from free text and writes replies.
type LanguageModel interface {
	ExtractEntities(ctx context.Context, text string) (Entities, error)
	GenerateReply(ctx context.Context, question, facts string) (string, error)
}

// SemanticEngine selects and summarizes job rows by natural-language criteria.
type SemanticEngine interface {
	// Filter keeps the rows satisfying the predicate description.
	Filter(ctx context.Context, rows []model.Job, predicate string) ([]model.Job, error)
	// Aggregate produces zero or more answers from rows following the instruction.
	Aggregate(ctx context.Context, rows []model.Job, instruction string) ([]string, error)
}

// Entities are the job identifiers found in a user message. Empty means absent.
type Entities struct {
	JobID   string `json:"job_id,omitempty"`
	JobName string `json:"job_name,omitempty"`
}

// Normalize trims whitespace and drops placeholder values models emit for "nothing found".
func (e Entities) Normalize() Entities {
	return Entities{
		JobID:   normalizeEntity(e.JobID),
		JobName: normalizeEntity(e.JobName),
	}
}

func normalizeEntity(v string) string {
	v = strings.Trim(strings.TrimSpace(v), `"'`+"`")
	switch strings.ToLower(v) {
	case "", "null", "none", "n/a", "unknown":
		return ""
	}
	return v
}
