package session

import (
	"github.com/mvillanueva/travel-expense/internal/report"
)

// Both gates are fail-closed: any failure blocks the whole action and
// leaves every piece of session state untouched.

// addExpenseCheck validates the add-expense action against the current
// session state and returns the parsed day, type and amount on success.
func (s *Session) addExpenseCheck(in AddExpenseInput) (report.DaySlot, report.ExpenseType, float64, error) {
	if s.employeeName == "" || s.position == "" || s.purpose == "" ||
		in.Day == "" || in.ExpenseType == "" || in.Amount == "" {
		return report.DaySlot{}, "", 0, validationErr("Please complete all required fields before adding an expense.")
	}

	day, err := report.ParseDay(in.Day)
	if err != nil {
		return report.DaySlot{}, "", 0, validationErr("Please select a valid day.")
	}
	slot, ok := report.SlotFor(s.week, day)
	if !ok {
		return report.DaySlot{}, "", 0, validationErr("Please select a day from the current week.")
	}

	// The first entry for a day fixes its location; afterwards the
	// stored one is reused and a freshly typed value is ignored.
	if !s.dayHasLocation(day) && in.Location == "" {
		return report.DaySlot{}, "", 0, validationErr("Please complete all required fields before adding an expense.")
	}

	expenseType, err := report.ParseExpenseType(in.ExpenseType)
	if err != nil {
		return report.DaySlot{}, "", 0, validationErr("Please select a valid expense type.")
	}

	amount, err := report.ParseAmount(in.Amount)
	if err != nil {
		return report.DaySlot{}, "", 0, validationErr("Amount must be numeric.")
	}

	return slot, expenseType, amount, nil
}

// submitCheck validates the submit action against the full session
// state. The missing-days list names exactly the days lacking a
// location, by display label, in week order.
func (s *Session) submitCheck() error {
	if s.employeeName == "" || s.position == "" || s.purpose == "" || s.startDate == "" {
		return validationErr("Please complete all required fields before submitting.")
	}

	if missing := s.ledger.MissingLocationDays(s.week); len(missing) > 0 {
		return &ValidationError{
			Message:     "Please enter location for all days.",
			MissingDays: missing,
		}
	}

	if !s.ledger.HasItems() {
		return validationErr("Please add at least one expense before submitting.")
	}

	return nil
}

func (s *Session) dayHasLocation(day report.Day) bool {
	record, exists := s.ledger[day]
	return exists && record.Location != ""
}
