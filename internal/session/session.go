package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mvillanueva/travel-expense/internal/report"
)

// ViewMode selects which rendering of the weekly summary is shown.
type ViewMode string

const (
	ViewTable ViewMode = "table"
	ViewCard  ViewMode = "card"
)

// Flash is a one-shot user-facing notification, consumed on next render.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// Submitter posts an assembled report to the remote endpoint. A nil
// error means the remote accepted the report.
type Submitter interface {
	Submit(ctx context.Context, r *report.Report) error
}

// AddExpenseInput carries the raw form values of an add-expense action.
type AddExpenseInput struct {
	Day         string
	ExpenseType string
	Amount      string
	Location    string
}

// Session is one expense report in progress. It owns all form state for
// a single browser: identity fields, the derived week, the ledger and
// the transient entry inputs. All access goes through its mutex; the
// only operation that suspends is the submission call, during which the
// in-flight flag blocks duplicate submits.
type Session struct {
	mu sync.Mutex

	employeeName string
	position     string
	purpose      string

	startDate string
	week      []report.DaySlot
	ledger    report.Ledger

	// Transient entry inputs, echoed back into the form on re-render.
	selectedDay   string
	locationInput string
	expenseType   string
	amountInput   string

	viewMode   ViewMode
	flash      *Flash
	submitting bool

	lastSeen time.Time
}

// New returns an empty session.
func New() *Session {
	return &Session{
		ledger:   report.NewLedger(),
		viewMode: ViewTable,
		lastSeen: time.Now(),
	}
}

// SetIdentity updates the top-level employee fields.
func (s *Session) SetIdentity(employeeName, position, purpose string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employeeName = employeeName
	s.position = position
	s.purpose = purpose
}

// SetStartDate applies a new start date. The date must be a Monday; on
// rejection all prior state is left untouched. On acceptance the week
// is regenerated and the ledger, day selection and pending location are
// reset, since a new week invalidates every prior day entry.
func (s *Session) SetStartDate(value string) error {
	week, err := report.NewWeek(value)
	if err != nil {
		if err == report.ErrNotMonday {
			return validationErr("Start date must be a Monday.")
		}
		return validationErr("Please enter a valid start date.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startDate = value
	s.week = week
	s.ledger = report.NewLedger()
	s.selectedDay = ""
	s.locationInput = ""
	return nil
}

// SelectDay records which week day the entry form is pointed at.
func (s *Session) SelectDay(day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDay = day
}

// SetViewMode switches between the table and card summary renderings.
func (s *Session) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == ViewCard {
		s.viewMode = ViewCard
		return
	}
	s.viewMode = ViewTable
}

// AddExpense validates and applies one add-expense action. The raw
// inputs are retained either way so a blocked action re-renders with
// the user's values intact. On success the type and amount inputs are
// cleared; the location input is cleared only when this entry was the
// day's first.
func (s *Session) AddExpense(in AddExpenseInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedDay = in.Day
	s.locationInput = in.Location
	s.expenseType = in.ExpenseType
	s.amountInput = in.Amount

	slot, expenseType, amount, err := s.addExpenseCheck(in)
	if err != nil {
		return err
	}

	first := s.ledger.AddOrUpdate(slot, expenseType, amount, in.Location)

	s.expenseType = ""
	s.amountInput = ""
	if first {
		s.locationInput = ""
	}
	return nil
}

// SetDayLocation applies an inline per-day location edit. Unlike the
// add-expense path it may overwrite a location that is already set.
func (s *Session) SetDayLocation(day, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := report.ParseDay(day)
	if err != nil {
		return validationErr("Please select a valid day.")
	}
	slot, ok := report.SlotFor(s.week, parsed)
	if !ok {
		return validationErr("Please select a day from the current week.")
	}

	s.ledger.SetLocation(slot, location)
	return nil
}

// DeleteItem removes one expense item from a day.
func (s *Session) DeleteItem(day, expenseType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := report.ParseDay(day)
	if err != nil {
		return validationErr("Please select a valid day.")
	}
	parsedType, err := report.ParseExpenseType(expenseType)
	if err != nil {
		return validationErr("Please select a valid expense type.")
	}

	s.ledger.DeleteItem(parsed, parsedType)
	return nil
}

// DeleteDay removes a whole day record.
func (s *Session) DeleteDay(day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := report.ParseDay(day)
	if err != nil {
		return validationErr("Please select a valid day.")
	}

	s.ledger.DeleteDay(parsed)
	return nil
}

// Reset clears every field and the ledger back to the initial state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.employeeName = ""
	s.position = ""
	s.purpose = ""
	s.startDate = ""
	s.week = nil
	s.ledger = report.NewLedger()
	s.selectedDay = ""
	s.locationInput = ""
	s.expenseType = ""
	s.amountInput = ""
}

// Submit runs the submit gate, assembles the report snapshot and posts
// it once. While the call is in flight duplicate submits are rejected.
// On acceptance the whole session resets; on rejection or transport
// failure every piece of state is preserved for a retry. The in-flight
// flag is cleared on either outcome.
//
// The assembled report is returned even when the remote rejects it, so
// callers can record the attempt.
func (s *Session) Submit(ctx context.Context, submitter Submitter) (*report.Report, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if err := s.submitCheck(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	r := report.Build(s.employeeName, s.position, s.purpose, s.startDate, s.ledger)
	s.submitting = true
	s.mu.Unlock()

	err := submitter.Submit(ctx, r)

	s.mu.Lock()
	s.submitting = false
	if err == nil {
		s.resetLocked()
	}
	s.mu.Unlock()

	if err != nil {
		return r, fmt.Errorf("submission failed: %w", err)
	}
	return r, nil
}

// SetFlash stores a one-shot notification for the next page render.
func (s *Session) SetFlash(kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = &Flash{Kind: kind, Message: message}
}

// Touch refreshes the session's idle timer.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
