package session

import (
	"github.com/mvillanueva/travel-expense/internal/report"
)

// DayView is one week day prepared for rendering: the derived slot plus
// a copy of the stored record, if any.
type DayView struct {
	Slot      report.DaySlot
	HasRecord bool
	Location  string
	Items     []report.ExpenseItem
	Total     float64
}

// View is a consistent snapshot of the session for one page render.
// Everything in it is copied out under the session lock; totals are
// recomputed from the ledger, never carried over.
type View struct {
	EmployeeName string
	Position     string
	Purpose      string
	StartDate    string

	Week []report.DaySlot
	Days []DayView

	HasEntries bool
	GrandTotal float64

	SelectedDay        string
	LocationInput      string
	ExpenseTypeInput   string
	AmountInput        string
	SelectedDayLocated bool

	ViewMode   ViewMode
	Flash      *Flash
	Submitting bool
}

// Snapshot copies the current state for rendering and consumes any
// pending flash message.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		EmployeeName:     s.employeeName,
		Position:         s.position,
		Purpose:          s.purpose,
		StartDate:        s.startDate,
		Week:             append([]report.DaySlot(nil), s.week...),
		HasEntries:       len(s.ledger) > 0,
		GrandTotal:       s.ledger.GrandTotal(),
		SelectedDay:      s.selectedDay,
		LocationInput:    s.locationInput,
		ExpenseTypeInput: s.expenseType,
		AmountInput:      s.amountInput,
		ViewMode:         s.viewMode,
		Flash:            s.flash,
		Submitting:       s.submitting,
	}
	s.flash = nil

	if day, err := report.ParseDay(s.selectedDay); err == nil {
		v.SelectedDayLocated = s.dayHasLocation(day)
	}

	for _, slot := range s.week {
		dayView := DayView{Slot: slot, Total: s.ledger.DayTotal(slot.Key)}
		if record, exists := s.ledger[slot.Key]; exists {
			dayView.HasRecord = true
			dayView.Location = record.Location
			dayView.Items = s.ledger.ItemsInOrder(slot.Key)
		}
		v.Days = append(v.Days, dayView)
	}

	return v
}
