package report

import (
	"fmt"
	"strings"
)

// ExpenseType identifies one entry in the fixed expense catalog.
type ExpenseType string

// Expense type identifiers. The order of ExpenseTypes below is the
// display order used by selects, summaries and the Excel export.
const (
	ExpenseBreakfast      ExpenseType = "breakfast"
	ExpenseLunch          ExpenseType = "lunch"
	ExpenseDinner         ExpenseType = "dinner"
	ExpenseGasoline       ExpenseType = "gasoline"
	ExpenseLiters         ExpenseType = "liters"
	ExpenseActualKM       ExpenseType = "actual_km"
	ExpenseAccommodation  ExpenseType = "accommodation"
	ExpenseParking        ExpenseType = "parking"
	ExpenseTollFee        ExpenseType = "toll_fee"
	ExpenseOtherTranspo   ExpenseType = "other_transpo"
	ExpenseLandFare       ExpenseType = "land_fare"
	ExpenseAirFare        ExpenseType = "air_fare"
	ExpenseBoatFare       ExpenseType = "boat_fare"
	ExpenseCommunication  ExpenseType = "communication"
	ExpenseCourier        ExpenseType = "courier"
	ExpenseOthersSampling ExpenseType = "others_sampling"
)

// ExpenseTypes lists the full catalog in display order.
var ExpenseTypes = []ExpenseType{
	ExpenseBreakfast,
	ExpenseLunch,
	ExpenseDinner,
	ExpenseGasoline,
	ExpenseLiters,
	ExpenseActualKM,
	ExpenseAccommodation,
	ExpenseParking,
	ExpenseTollFee,
	ExpenseOtherTranspo,
	ExpenseLandFare,
	ExpenseAirFare,
	ExpenseBoatFare,
	ExpenseCommunication,
	ExpenseCourier,
	ExpenseOthersSampling,
}

// expenseLabels holds the fixed display labels. Labels are used for
// rendering and reporting only, never for logic.
var expenseLabels = map[ExpenseType]string{
	ExpenseBreakfast:      "BREAKFAST (Out base only)",
	ExpenseLunch:          "LUNCH",
	ExpenseDinner:         "DINNER",
	ExpenseGasoline:       "GASOLINE",
	ExpenseLiters:         "LITERS",
	ExpenseActualKM:       "ACTUAL KILOMETERS VISE VERSA",
	ExpenseAccommodation:  "ACCOMMODATION (Out base only)",
	ExpenseParking:        "PARKING",
	ExpenseTollFee:        "TOLL FEE/PASSWAY",
	ExpenseOtherTranspo:   "*OTHER TRANSPO (Vulcanized)",
	ExpenseLandFare:       "LAND FARE",
	ExpenseAirFare:        "AIR FARE",
	ExpenseBoatFare:       "BOAT FARE//ENVIRONMENTAL FEE//TERMINAL FEE",
	ExpenseCommunication:  "COMMUNICATION",
	ExpenseCourier:        "COURIER",
	ExpenseOthersSampling: "OTHERS-SAMPLING GIRL",
}

// ParseExpenseType validates an expense type identifier from user input.
func ParseExpenseType(s string) (ExpenseType, error) {
	t := ExpenseType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := expenseLabels[t]; !ok {
		return "", fmt.Errorf("unknown expense type: %q", s)
	}
	return t, nil
}

// Label returns the fixed display label for the expense type.
func (t ExpenseType) Label() string {
	if label, ok := expenseLabels[t]; ok {
		return label
	}
	return string(t)
}
