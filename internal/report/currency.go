package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// phpPrinter formats amounts with en-PH digit grouping.
var phpPrinter = message.NewPrinter(language.MustParse("en-PH"))

// FormatPHP renders an amount as Philippine pesos with two decimals and
// a currency symbol prefix. Formatting is presentation-only and never
// feeds back into stored amounts.
func FormatPHP(amount float64) string {
	return phpPrinter.Sprintf("₱%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// ParseAmount parses a user-typed amount. The amount must be a finite,
// non-negative number.
func ParseAmount(s string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be numeric: %q", s)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("amount must be a finite number: %q", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("amount must not be negative: %q", s)
	}
	return value, nil
}
