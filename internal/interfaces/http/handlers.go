package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mvillanueva/travel-expense/internal/export"
	"github.com/mvillanueva/travel-expense/internal/models"
	"github.com/mvillanueva/travel-expense/internal/report"
	"github.com/mvillanueva/travel-expense/internal/repository"
	"github.com/mvillanueva/travel-expense/internal/session"
	"github.com/mvillanueva/travel-expense/pkg/database"
	"github.com/mvillanueva/travel-expense/pkg/utils"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	sessions   *session.Manager
	submitter  session.Submitter
	db         *database.DB
	repo       *repository.SubmissionRepository
	exporter   *export.Exporter
	cookieName string
	logger     *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	sessions *session.Manager,
	submitter session.Submitter,
	db *database.DB,
	repo *repository.SubmissionRepository,
	exporter *export.Exporter,
	cookieName string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessions:   sessions,
		submitter:  submitter,
		db:         db,
		repo:       repo,
		exporter:   exporter,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListSubmissionsRequest represents query parameters for listing submissions
type ListSubmissionsRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// resolve returns the session for the request's cookie, creating one and
// setting the cookie when the browser has none yet.
func (h *Handlers) resolve(c *gin.Context) *session.Session {
	cookieID, _ := c.Cookie(h.cookieName)

	id, s := h.sessions.GetOrCreate(cookieID)
	if id != cookieID {
		c.SetCookie(h.cookieName, id, 0, "/", "", false, true)
	}
	return s
}

// syncIdentity copies the identity fields posted with every form action
// into the session, so typed-but-unsaved values survive a redirect.
func (h *Handlers) syncIdentity(c *gin.Context, s *session.Session) {
	s.SetIdentity(
		h.formValue(c, "employee_name"),
		h.formValue(c, "position"),
		h.formValue(c, "purpose"),
	)
}

// formValue reads a free-text form field with control characters stripped.
func (h *Handlers) formValue(c *gin.Context, name string) string {
	return utils.SanitizeString(c.PostForm(name))
}

func (h *Handlers) flashError(s *session.Session, err error) {
	s.SetFlash("error", err.Error())
}

func (h *Handlers) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ShowForm handles GET /
func (h *Handlers) ShowForm(c *gin.Context) {
	s := h.resolve(c)

	c.HTML(http.StatusOK, "form.html", gin.H{
		"View":         s.Snapshot(),
		"ExpenseTypes": report.ExpenseTypes,
	})
}

// SetWeek handles POST /week
func (h *Handlers) SetWeek(c *gin.Context) {
	s := h.resolve(c)
	h.syncIdentity(c, s)

	if err := s.SetStartDate(c.PostForm("start_date")); err != nil {
		h.flashError(s, err)
	}
	h.redirectHome(c)
}

// AddExpense handles POST /expenses
func (h *Handlers) AddExpense(c *gin.Context) {
	s := h.resolve(c)
	h.syncIdentity(c, s)

	in := session.AddExpenseInput{
		Day:         c.PostForm("day"),
		ExpenseType: c.PostForm("expense_type"),
		Amount:      c.PostForm("amount"),
		Location:    h.formValue(c, "location"),
	}
	if err := s.AddExpense(in); err != nil {
		h.flashError(s, err)
	}
	h.redirectHome(c)
}

// SetDayLocation handles POST /days/:day/location
func (h *Handlers) SetDayLocation(c *gin.Context) {
	s := h.resolve(c)

	if err := s.SetDayLocation(c.Param("day"), h.formValue(c, "location")); err != nil {
		h.flashError(s, err)
	}
	h.redirectHome(c)
}

// DeleteExpense handles POST /days/:day/expenses/:type/delete
func (h *Handlers) DeleteExpense(c *gin.Context) {
	s := h.resolve(c)

	if err := s.DeleteItem(c.Param("day"), c.Param("type")); err != nil {
		h.flashError(s, err)
	}
	h.redirectHome(c)
}

// DeleteDay handles POST /days/:day/delete
func (h *Handlers) DeleteDay(c *gin.Context) {
	s := h.resolve(c)

	if err := s.DeleteDay(c.Param("day")); err != nil {
		h.flashError(s, err)
	}
	h.redirectHome(c)
}

// SetViewMode handles POST /view
func (h *Handlers) SetViewMode(c *gin.Context) {
	s := h.resolve(c)

	s.SetViewMode(session.ViewMode(c.PostForm("mode")))
	h.redirectHome(c)
}

// ClearForm handles POST /clear
func (h *Handlers) ClearForm(c *gin.Context) {
	s := h.resolve(c)

	s.Reset()
	h.redirectHome(c)
}

// SubmitReport handles POST /submit. The session runs the submit gate
// and posts the report once; here the settled outcome is recorded in the
// audit trail and, on acceptance, exported as a workbook.
func (h *Handlers) SubmitReport(c *gin.Context) {
	s := h.resolve(c)
	h.syncIdentity(c, s)

	r, err := s.Submit(c.Request.Context(), h.submitter)

	switch {
	case err == nil:
		h.recordAccepted(r)
		s.SetFlash("success", "Form submitted successfully!")

	case errors.Is(err, session.ErrSubmissionInFlight):
		s.SetFlash("error", "A submission is already in progress.")

	default:
		if verr, ok := session.AsValidation(err); ok {
			s.SetFlash("error", verr.Error())
			break
		}
		// Remote rejection or transport failure. The attempt still goes
		// into the audit trail; the form keeps its state for a retry.
		h.recordOutcome(r, models.SubmissionStatusFailed, err.Error())
		s.SetFlash("error", "Error submitting form. Please try again.")
	}

	h.redirectHome(c)
}

// recordAccepted stores the SENT audit record and writes the Excel
// export next to it. Neither failure blocks the user response.
func (h *Handlers) recordAccepted(r *report.Report) {
	sub := h.recordOutcome(r, models.SubmissionStatusSent, "")
	if sub == nil {
		return
	}

	path, err := h.exporter.Export(r, sub.ID)
	if err != nil {
		h.logger.Error("Failed to export submission",
			zap.Int64("submission_id", sub.ID), zap.Error(err))
		return
	}
	if err := h.repo.SetExportPath(nil, sub.ID, path); err != nil {
		h.logger.Error("Failed to record export path",
			zap.Int64("submission_id", sub.ID), zap.Error(err))
	}
}

func (h *Handlers) recordOutcome(r *report.Report, status, errMsg string) *models.Submission {
	payload, err := json.Marshal(r)
	if err != nil {
		h.logger.Error("Failed to marshal submission payload", zap.Error(err))
		return nil
	}

	sub := &models.Submission{
		EmployeeName: r.EmployeeName,
		Position:     r.Position,
		Purpose:      r.Purpose,
		StartDate:    r.StartDate,
		GrandTotal:   r.GrandTotal,
		Status:       status,
		Error:        errMsg,
		Payload:      string(payload),
		SubmittedAt:  time.Now().UTC(),
	}

	err = h.db.WithTransaction(func(tx *sql.Tx) error {
		return h.repo.Create(tx, sub)
	})
	if err != nil {
		h.logger.Error("Failed to record submission", zap.String("status", status), zap.Error(err))
		return nil
	}

	h.logger.Info("Submission recorded",
		zap.Int64("submission_id", sub.ID),
		zap.String("status", status),
		zap.Float64("grand_total", sub.GrandTotal))
	return sub
}

// ListSubmissions handles GET /api/v1/submissions
func (h *Handlers) ListSubmissions(c *gin.Context) {
	var req ListSubmissionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	submissions, err := h.repo.List(req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list submissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve submissions",
		})
		return
	}
	if submissions == nil {
		submissions = []*models.Submission{}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    submissions,
	})
}

// GetSubmission handles GET /api/v1/submissions/:id
func (h *Handlers) GetSubmission(c *gin.Context) {
	id, ok := h.submissionID(c)
	if !ok {
		return
	}

	submission, err := h.repo.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get submission", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve submission",
		})
		return
	}
	if submission == nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "submission not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    submission,
	})
}

// DownloadExport handles GET /api/v1/submissions/:id/export
func (h *Handlers) DownloadExport(c *gin.Context) {
	id, ok := h.submissionID(c)
	if !ok {
		return
	}

	submission, err := h.repo.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get submission", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve submission",
		})
		return
	}
	if submission == nil || submission.ExportPath == "" {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "no export available for this submission",
		})
		return
	}

	c.FileAttachment(submission.ExportPath, filepath.Base(submission.ExportPath))
}

func (h *Handlers) submissionID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid submission ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid submission ID",
		})
		return 0, false
	}
	return id, true
}
