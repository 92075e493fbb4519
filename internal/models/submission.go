package models

import "time"

// Submission status constants
const (
	SubmissionStatusSent   = "SENT"
	SubmissionStatusFailed = "FAILED"
)

// Submission is the audit record of one submit attempt: the full report
// payload as posted, the outcome, and the generated export location.
// The live form itself is never persisted; only settled attempts are.
type Submission struct {
	ID           int64     `json:"id"`
	EmployeeName string    `json:"employee_name"`
	Position     string    `json:"position"`
	Purpose      string    `json:"purpose"`
	StartDate    string    `json:"start_date"`
	GrandTotal   float64   `json:"grand_total"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	Payload      string    `json:"-"`
	ExportPath   string    `json:"-"`
	SubmittedAt  time.Time `json:"submitted_at"`
	CreatedAt    time.Time `json:"created_at"`
}
