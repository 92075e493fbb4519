package report

// Report is the submission payload. It is assembled once at submit time
// and immutable thereafter; the embedded ledger is a deep copy.
type Report struct {
	EmployeeName string  `json:"employeeName"`
	Position     string  `json:"position"`
	Purpose      string  `json:"purpose"`
	StartDate    string  `json:"startDate"`
	Expenses     Ledger  `json:"expenses"`
	GrandTotal   float64 `json:"grandTotal"`
}

// Build assembles an immutable report snapshot from the current session
// fields and ledger state.
func Build(employeeName, position, purpose, startDate string, ledger Ledger) *Report {
	return &Report{
		EmployeeName: employeeName,
		Position:     position,
		Purpose:      purpose,
		StartDate:    startDate,
		Expenses:     ledger.Clone(),
		GrandTotal:   ledger.GrandTotal(),
	}
}
