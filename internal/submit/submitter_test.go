package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mvillanueva/travel-expense/internal/report"
)

func sampleReport(t *testing.T) *report.Report {
	t.Helper()
	week, err := report.NewWeek("2025-01-06")
	require.NoError(t, err)

	ledger := report.NewLedger()
	ledger.AddOrUpdate(week[0], report.ExpenseLunch, 250, "MANILA")

	return report.Build("Juan Dela Cruz", "Field Engineer", "Site inspection", "2025-01-06", ledger)
}

func TestSubmitterAccept(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := New(Config{EndpointURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	err := s.Submit(context.Background(), sampleReport(t))
	require.NoError(t, err)

	assert.Equal(t, "Juan Dela Cruz", received["employeeName"])
	assert.Equal(t, "2025-01-06", received["startDate"])
	assert.Equal(t, 250.0, received["grandTotal"])
	_, hasExpenses := received["expenses"].(map[string]any)
	assert.True(t, hasExpenses)
}

func TestSubmitterRejectsNon200(t *testing.T) {
	// 2xx other than 200 is still a rejection.
	for _, status := range []int{http.StatusAccepted, http.StatusBadRequest, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		s := New(Config{EndpointURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
		err := s.Submit(context.Background(), sampleReport(t))
		assert.Error(t, err, "status %d", status)
		assert.Contains(t, err.Error(), "status")

		server.Close()
	}
}

func TestSubmitterTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close() // connection refused from here on

	s := New(Config{EndpointURL: server.URL, Timeout: time.Second}, zap.NewNop())
	err := s.Submit(context.Background(), sampleReport(t))
	assert.Error(t, err)
}

func TestSubmitterContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Config{EndpointURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
	err := s.Submit(ctx, sampleReport(t))
	assert.Error(t, err)
}
