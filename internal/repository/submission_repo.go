package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mvillanueva/travel-expense/internal/models"
)

// SubmissionRepository handles submission audit records
type SubmissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// Create records one submission attempt
func (r *SubmissionRepository) Create(tx *sql.Tx, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (
			employee_name, position, purpose, start_date, grand_total,
			status, error, payload, export_path, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := []any{
		submission.EmployeeName,
		submission.Position,
		submission.Purpose,
		submission.StartDate,
		submission.GrandTotal,
		submission.Status,
		submission.Error,
		submission.Payload,
		submission.ExportPath,
		submission.SubmittedAt,
	}

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, args...)
	} else {
		result, err = r.db.Exec(query, args...)
	}

	if err != nil {
		r.logger.Error("Failed to create submission record", zap.Error(err))
		return fmt.Errorf("failed to create submission record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	submission.ID = id
	return nil
}

// GetByID retrieves a submission record by ID. Returns nil when absent.
func (r *SubmissionRepository) GetByID(id int64) (*models.Submission, error) {
	query := `
		SELECT id, employee_name, position, purpose, start_date, grand_total,
			status, error, payload, export_path, submitted_at, created_at
		FROM submissions
		WHERE id = ?
	`

	var submission models.Submission
	err := r.db.QueryRow(query, id).Scan(
		&submission.ID,
		&submission.EmployeeName,
		&submission.Position,
		&submission.Purpose,
		&submission.StartDate,
		&submission.GrandTotal,
		&submission.Status,
		&submission.Error,
		&submission.Payload,
		&submission.ExportPath,
		&submission.SubmittedAt,
		&submission.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get submission by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &submission, nil
}

// List retrieves submission records with pagination, newest first
func (r *SubmissionRepository) List(limit, offset int) ([]*models.Submission, error) {
	query := `
		SELECT id, employee_name, position, purpose, start_date, grand_total,
			status, error, payload, export_path, submitted_at, created_at
		FROM submissions
		ORDER BY submitted_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list submissions", zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		var submission models.Submission
		err := rows.Scan(
			&submission.ID,
			&submission.EmployeeName,
			&submission.Position,
			&submission.Purpose,
			&submission.StartDate,
			&submission.GrandTotal,
			&submission.Status,
			&submission.Error,
			&submission.Payload,
			&submission.ExportPath,
			&submission.SubmittedAt,
			&submission.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	return submissions, rows.Err()
}

// SetExportPath records where the generated Excel file was written
func (r *SubmissionRepository) SetExportPath(tx *sql.Tx, id int64, path string) error {
	query := `UPDATE submissions SET export_path = ? WHERE id = ?`

	var err error
	if tx != nil {
		_, err = tx.Exec(query, path, id)
	} else {
		_, err = r.db.Exec(query, path, id)
	}

	if err != nil {
		r.logger.Error("Failed to set export path", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set export path: %w", err)
	}

	return nil
}
