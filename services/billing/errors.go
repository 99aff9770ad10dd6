package billing

import "fmt"

// BranchError records a failure in one customer/booking branch of a run.
// Branches fail independently; a BranchError never aborts siblings.
type BranchError struct {
	CustomerID string
	BookingID  string
	Step       string // "history", "food", "create", "mail"
	Err        error
}

func (e *BranchError) Error() string {
	if e.BookingID == "" {
		return fmt.Sprintf("customer %s: %s: %v", e.CustomerID, e.Step, e.Err)
	}
	return fmt.Sprintf("customer %s booking %s: %s: %v", e.CustomerID, e.BookingID, e.Step, e.Err)
}

func (e *BranchError) Unwrap() error { return e.Err }
