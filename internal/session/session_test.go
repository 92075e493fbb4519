package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvillanueva/travel-expense/internal/report"
)

// fakeSubmitter records submitted reports and returns a scripted error.
type fakeSubmitter struct {
	err     error
	reports []*report.Report
	block   chan struct{}
}

func (f *fakeSubmitter) Submit(_ context.Context, r *report.Report) error {
	f.reports = append(f.reports, r)
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func readySession(t *testing.T) *Session {
	t.Helper()
	s := New()
	s.SetIdentity("Juan Dela Cruz", "Field Engineer", "Site inspection")
	require.NoError(t, s.SetStartDate("2025-01-06"))
	return s
}

// fillWeek locates every day and adds one lunch expense on Monday so
// the submit gate passes.
func fillWeek(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.AddExpense(AddExpenseInput{
		Day: "monday", ExpenseType: "lunch", Amount: "250", Location: "Manila",
	}))
	for _, day := range report.WeekDays[1:] {
		require.NoError(t, s.SetDayLocation(string(day), "MANILA"))
	}
}

func TestSessionSetStartDate(t *testing.T) {
	t.Run("rejects non-Monday and keeps prior state", func(t *testing.T) {
		s := readySession(t)
		fillWeek(t, s)

		err := s.SetStartDate("2025-01-07")
		require.Error(t, err)
		verr, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Start date must be a Monday.", verr.Message)

		v := s.Snapshot()
		assert.Equal(t, "2025-01-06", v.StartDate)
		assert.Equal(t, 250.0, v.GrandTotal)
	})

	t.Run("accepting a new Monday resets the ledger and selection", func(t *testing.T) {
		s := readySession(t)
		fillWeek(t, s)
		s.SelectDay("monday")

		require.NoError(t, s.SetStartDate("2025-01-13"))

		v := s.Snapshot()
		assert.Equal(t, "2025-01-13", v.StartDate)
		assert.Zero(t, v.GrandTotal)
		assert.False(t, v.HasEntries)
		assert.Empty(t, v.SelectedDay)
		assert.Equal(t, "MONDAY - 1/13/2025", v.Week[0].Label)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		s := New()
		err := s.SetStartDate("not-a-date")
		_, ok := AsValidation(err)
		assert.True(t, ok)
	})
}

func TestSessionAddExpense(t *testing.T) {
	t.Run("blocks when identity fields are empty", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SetStartDate("2025-01-06"))

		err := s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "lunch", Amount: "250", Location: "MANILA",
		})
		verr, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Please complete all required fields before adding an expense.", verr.Message)
		assert.False(t, s.Snapshot().HasEntries)
	})

	t.Run("blocks when no location is resolvable", func(t *testing.T) {
		s := readySession(t)
		err := s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "lunch", Amount: "250",
		})
		require.Error(t, err)
		assert.False(t, s.Snapshot().HasEntries)
	})

	t.Run("blocks a non-numeric amount and keeps the typed inputs", func(t *testing.T) {
		s := readySession(t)
		err := s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "lunch", Amount: "abc", Location: "MANILA",
		})
		verr, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Amount must be numeric.", verr.Message)

		v := s.Snapshot()
		assert.Equal(t, "abc", v.AmountInput)
		assert.Equal(t, "lunch", v.ExpenseTypeInput)
		assert.False(t, v.HasEntries)
	})

	t.Run("first entry clears the location input, later entries keep it", func(t *testing.T) {
		s := readySession(t)

		require.NoError(t, s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "lunch", Amount: "250", Location: "Manila",
		}))
		v := s.Snapshot()
		assert.Empty(t, v.LocationInput)
		assert.Empty(t, v.ExpenseTypeInput)
		assert.Empty(t, v.AmountInput)
		assert.True(t, v.SelectedDayLocated)

		// Second entry for the located day: typed location is ignored.
		require.NoError(t, s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "gasoline", Amount: "500", Location: "CEBU",
		}))
		v = s.Snapshot()
		require.Len(t, v.Days, 7)
		assert.Equal(t, "MANILA", v.Days[0].Location)
		assert.Equal(t, 750.0, v.GrandTotal)
	})

	t.Run("rejects a day outside the generated week", func(t *testing.T) {
		s := New()
		s.SetIdentity("Juan Dela Cruz", "Field Engineer", "Site inspection")

		err := s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "lunch", Amount: "250", Location: "MANILA",
		})
		require.Error(t, err)
	})
}

func TestSessionDelete(t *testing.T) {
	s := readySession(t)
	require.NoError(t, s.AddExpense(AddExpenseInput{
		Day: "monday", ExpenseType: "lunch", Amount: "250", Location: "MANILA",
	}))
	require.NoError(t, s.AddExpense(AddExpenseInput{
		Day: "monday", ExpenseType: "gasoline", Amount: "500", Location: "",
	}))

	require.NoError(t, s.DeleteItem("monday", "lunch"))
	assert.Equal(t, 500.0, s.Snapshot().GrandTotal)

	require.NoError(t, s.DeleteItem("monday", "gasoline"))
	v := s.Snapshot()
	assert.False(t, v.HasEntries)
	assert.False(t, v.Days[0].HasRecord)

	require.NoError(t, s.AddExpense(AddExpenseInput{
		Day: "monday", ExpenseType: "lunch", Amount: "250", Location: "MANILA",
	}))
	require.NoError(t, s.DeleteDay("monday"))
	assert.False(t, s.Snapshot().HasEntries)
}

func TestSessionSubmitGate(t *testing.T) {
	t.Run("blocks when identity fields are missing", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SetStartDate("2025-01-06"))

		_, err := s.Submit(context.Background(), &fakeSubmitter{})
		verr, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Please complete all required fields before submitting.", verr.Message)
	})

	t.Run("reports exactly the days lacking a location", func(t *testing.T) {
		s := readySession(t)
		require.NoError(t, s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "lunch", Amount: "250", Location: "MANILA",
		}))
		require.NoError(t, s.SetDayLocation("sunday", "MAKATI"))

		_, err := s.Submit(context.Background(), &fakeSubmitter{})
		verr, ok := AsValidation(err)
		require.True(t, ok)
		require.Len(t, verr.MissingDays, 5)
		assert.Equal(t, "TUESDAY - 1/7/2025", verr.MissingDays[0])
		assert.Equal(t, "SATURDAY - 1/11/2025", verr.MissingDays[4])
		assert.Contains(t, verr.Error(), "Missing for: TUESDAY - 1/7/2025")
	})

	t.Run("blocks when all days are located but no items exist", func(t *testing.T) {
		s := readySession(t)
		for _, day := range report.WeekDays {
			require.NoError(t, s.SetDayLocation(string(day), "MANILA"))
		}

		_, err := s.Submit(context.Background(), &fakeSubmitter{})
		verr, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Please add at least one expense before submitting.", verr.Message)
	})
}

func TestSessionSubmit(t *testing.T) {
	t.Run("success resets the whole session", func(t *testing.T) {
		s := readySession(t)
		fillWeek(t, s)

		submitter := &fakeSubmitter{}
		r, err := s.Submit(context.Background(), submitter)
		require.NoError(t, err)
		require.Len(t, submitter.reports, 1)
		assert.Equal(t, 250.0, r.GrandTotal)
		assert.Equal(t, "2025-01-06", r.StartDate)

		v := s.Snapshot()
		assert.Empty(t, v.EmployeeName)
		assert.Empty(t, v.StartDate)
		assert.Empty(t, v.Week)
		assert.False(t, v.HasEntries)
		assert.False(t, v.Submitting)
	})

	t.Run("failure preserves every pre-submit value", func(t *testing.T) {
		s := readySession(t)
		fillWeek(t, s)

		submitter := &fakeSubmitter{err: errors.New("remote returned status 500")}
		r, err := s.Submit(context.Background(), submitter)
		require.Error(t, err)
		require.NotNil(t, r, "the attempted report is returned for audit")
		assert.Contains(t, err.Error(), "remote returned status 500")

		v := s.Snapshot()
		assert.Equal(t, "Juan Dela Cruz", v.EmployeeName)
		assert.Equal(t, "2025-01-06", v.StartDate)
		assert.Equal(t, 250.0, v.GrandTotal)
		assert.False(t, v.Submitting)
	})

	t.Run("rejects a duplicate submit while in flight", func(t *testing.T) {
		s := readySession(t)
		fillWeek(t, s)

		block := make(chan struct{})
		submitter := &fakeSubmitter{block: block}

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := s.Submit(context.Background(), submitter)
			assert.NoError(t, err)
		}()

		require.Eventually(t, func() bool {
			return s.Snapshot().Submitting
		}, time.Second, 5*time.Millisecond)

		_, err := s.Submit(context.Background(), &fakeSubmitter{})
		assert.ErrorIs(t, err, ErrSubmissionInFlight)

		close(block)
		<-done
		assert.False(t, s.Snapshot().Submitting)
	})

	t.Run("report snapshot is immutable after later edits", func(t *testing.T) {
		s := readySession(t)
		fillWeek(t, s)

		submitter := &fakeSubmitter{err: errors.New("rejected")}
		r, _ := s.Submit(context.Background(), submitter)

		require.NoError(t, s.AddExpense(AddExpenseInput{
			Day: "monday", ExpenseType: "lunch", Amount: "999", Location: "",
		}))
		assert.Equal(t, 250.0, r.Expenses.GrandTotal())
	})
}

func TestSnapshotConsumesFlash(t *testing.T) {
	s := New()
	s.SetFlash("error", "Start date must be a Monday.")

	v := s.Snapshot()
	require.NotNil(t, v.Flash)
	assert.Equal(t, "error", v.Flash.Kind)

	assert.Nil(t, s.Snapshot().Flash)
}
