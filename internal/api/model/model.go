package model

// Job is a row of the jobs table. The assistant only ever reads it.
type Job struct {
	JobID   string `db:"job_id" json:"job_id"`
	JobName string `db:"job_name" json:"job_name"`
	Status  string `db:"status" json:"status"`
}
