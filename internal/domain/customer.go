/**
 * @description
 * Domain models for customer and package rows read from the external
 * datastore. These are constructed per-request from a live read and never
 * written back; the hosted tables are authoritative.
 */
package domain

import "time"

// CustomerRecord is one row of the customer table. Nullable date columns are
// pointers; a nil date means the column was blank.
type CustomerRecord struct {
	VacID         int64
	FirstName     string
	LastName      string
	Email         string
	CellPhone     string
	HomePhone     string
	PackageCode   string
	ValidatedDep  float64
	ConfirmedDep  float64
	TravelDate    *time.Time
	TravelRep     string
	ConfValidCode string
	CashBackAmt   float64
	FinalDocDate  *time.Time
	ItinPrintDate *time.Time
	DecisionReady bool
	HotelDate     *time.Time
	AgencyDate    *time.Time
	DateEntered   *time.Time
}

// PackageInfo is the deposit schedule and descriptive fields for one package
// code. At most one row exists per code; a missing row means no package
// constraints are known and reconciliation falls back to a weaker policy.
type PackageInfo struct {
	Code            string
	RefundableDep   float64
	ConfirmationDep float64
	Destination     string
	Nights          int
	VacationType    string
	Description     string
}

// ExpectedTotal is the full deposit amount the package calls for.
func (p PackageInfo) ExpectedTotal() float64 {
	return p.RefundableDep + p.ConfirmationDep
}
