package report

import "strings"

// ExpenseItem is a single typed amount within a day. Items are keyed by
// type, so re-adding a type overwrites the previous amount.
type ExpenseItem struct {
	Type   ExpenseType `json:"type"`
	Amount float64     `json:"amount"`
}

// DayRecord holds the stored location and expense items for one day.
// The Date field is a denormalized copy of the day slot's display label.
type DayRecord struct {
	Date     string                      `json:"date"`
	Location string                      `json:"location"`
	Items    map[ExpenseType]ExpenseItem `json:"items"`
}

// Ledger maps day keys to their records for the single active week.
// It holds at most seven entries, one per generated day slot, and is
// always iterated in canonical Monday-to-Sunday order for display.
type Ledger map[Day]*DayRecord

// NewLedger returns an empty ledger.
func NewLedger() Ledger {
	return make(Ledger)
}

// AddOrUpdate writes the expense item for the slot's day, creating the
// day record on first use. The first entry for a day fixes its location;
// later entries reuse the stored one and the supplied location is
// ignored. Returns true when this was the day's first entry.
func (l Ledger) AddOrUpdate(slot DaySlot, expenseType ExpenseType, amount float64, location string) bool {
	record, exists := l[slot.Key]
	if !exists {
		record = &DayRecord{
			Date:  slot.Label,
			Items: make(map[ExpenseType]ExpenseItem),
		}
		l[slot.Key] = record
	}

	first := record.Location == ""
	if first {
		record.Location = strings.ToUpper(strings.TrimSpace(location))
	}

	record.Items[expenseType] = ExpenseItem{Type: expenseType, Amount: amount}
	return first
}

// SetLocation directly edits a day's location, creating the day record
// when absent. Unlike AddOrUpdate it never preserves a prior value and
// does not require an expense item to exist.
func (l Ledger) SetLocation(slot DaySlot, location string) {
	record, exists := l[slot.Key]
	if !exists {
		record = &DayRecord{
			Date:  slot.Label,
			Items: make(map[ExpenseType]ExpenseItem),
		}
		l[slot.Key] = record
	}
	record.Location = strings.ToUpper(location)
}

// DeleteItem removes one expense item. Deleting the last item of a day
// removes the whole day record, forgetting its location.
func (l Ledger) DeleteItem(day Day, expenseType ExpenseType) {
	record, exists := l[day]
	if !exists {
		return
	}
	delete(record.Items, expenseType)
	if len(record.Items) == 0 {
		delete(l, day)
	}
}

// DeleteDay unconditionally removes the day record.
func (l Ledger) DeleteDay(day Day) {
	delete(l, day)
}

// DayTotal sums the item amounts for one day, zero if the day is absent.
func (l Ledger) DayTotal(day Day) float64 {
	record, exists := l[day]
	if !exists {
		return 0
	}
	total := 0.0
	for _, item := range record.Items {
		total += item.Amount
	}
	return total
}

// GrandTotal sums the day totals over every day present in the ledger.
// Totals are always recomputed from current state, never cached.
func (l Ledger) GrandTotal() float64 {
	total := 0.0
	for day := range l {
		total += l.DayTotal(day)
	}
	return total
}

// HasItems reports whether at least one expense item exists anywhere in
// the ledger.
func (l Ledger) HasItems() bool {
	for _, record := range l {
		if len(record.Items) > 0 {
			return true
		}
	}
	return false
}

// MissingLocationDays returns the display labels of week days that do
// not yet have a located day record, in canonical week order.
func (l Ledger) MissingLocationDays(week []DaySlot) []string {
	var missing []string
	for _, slot := range week {
		record, exists := l[slot.Key]
		if !exists || record.Location == "" {
			missing = append(missing, slot.Label)
		}
	}
	return missing
}

// ItemsInOrder returns a day's items in catalog display order.
func (l Ledger) ItemsInOrder(day Day) []ExpenseItem {
	record, exists := l[day]
	if !exists {
		return nil
	}
	items := make([]ExpenseItem, 0, len(record.Items))
	for _, expenseType := range ExpenseTypes {
		if item, ok := record.Items[expenseType]; ok {
			items = append(items, item)
		}
	}
	return items
}

// Clone deep-copies the ledger so a report snapshot stays immutable
// after later edits.
func (l Ledger) Clone() Ledger {
	clone := make(Ledger, len(l))
	for day, record := range l {
		items := make(map[ExpenseType]ExpenseItem, len(record.Items))
		for expenseType, item := range record.Items {
			items[expenseType] = item
		}
		clone[day] = &DayRecord{
			Date:     record.Date,
			Location: record.Location,
			Items:    items,
		}
	}
	return clone
}
