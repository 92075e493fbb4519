// Package submit posts completed reports to the configured remote
// endpoint. One attempt per submit action; there is no retry policy.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mvillanueva/travel-expense/internal/report"
)

// Config holds submission endpoint settings.
type Config struct {
	EndpointURL string
	Timeout     time.Duration
}

// Submitter serializes reports to JSON and posts them once.
type Submitter struct {
	endpointURL string
	client      *http.Client
	logger      *zap.Logger
}

// New creates a submitter for the configured endpoint.
func New(cfg Config, logger *zap.Logger) *Submitter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Submitter{
		endpointURL: cfg.EndpointURL,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Submit posts the report. Only HTTP 200 signals acceptance; any other
// status or a transport-level failure is a rejection. The response body
// is not consumed beyond the status code.
func (s *Submitter) Submit(ctx context.Context, r *report.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Info("Submitting expense report",
		zap.String("employee", r.EmployeeName),
		zap.String("start_date", r.StartDate),
		zap.Float64("grand_total", r.GrandTotal))

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Report submission failed", zap.Error(err))
		return fmt.Errorf("failed to reach submission endpoint: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("Report rejected by remote",
			zap.Int("status", resp.StatusCode),
			zap.String("employee", r.EmployeeName))
		return fmt.Errorf("remote rejected the report: status %d", resp.StatusCode)
	}

	s.logger.Info("Report accepted by remote",
		zap.String("employee", r.EmployeeName),
		zap.Float64("grand_total", r.GrandTotal))
	return nil
}
