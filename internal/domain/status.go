/**
 * @description
 * The status vocabulary for a customer's travel-package lifecycle, and the
 * computed result handed back to the voice-agent platform. A status is
 * selected by an ordered decision list; exactly one applies per evaluation.
 */
package domain

// Status identifies where a customer sits in the package lifecycle.
type Status string

const (
	// StatusRefundPending indicates an open cash-back matter with no final
	// documents issued yet.
	StatusRefundPending Status = "refund_pending"

	// StatusTripComplete indicates the customer already traveled.
	StatusTripComplete Status = "trip_complete"

	// StatusTravelPending indicates hotel and agency are booked and travel is
	// within two weeks.
	StatusTravelPending Status = "travel_pending"

	// StatusBookingPending indicates the itinerary has printed and travel is
	// within 45 days.
	StatusBookingPending Status = "booking_pending"

	// StatusTravelRepAssigned indicates a travel rep owns the file and travel
	// is within 75 days.
	StatusTravelRepAssigned Status = "travel_rep_assigned"

	// StatusWaitingForTravelRep indicates deposits are in and dates are set
	// but no rep has been assigned yet.
	StatusWaitingForTravelRep Status = "waiting_for_travel_rep"

	// StatusReadyToSchedule indicates deposits are in but no travel date has
	// been chosen.
	StatusReadyToSchedule Status = "ready_to_schedule"

	// StatusDatesScheduled indicates confirmed dates far enough out that rep
	// assignment comes later.
	StatusDatesScheduled Status = "dates_scheduled"

	// StatusNeedsRescheduling indicates unconfirmed dates inside the
	// 75-day window.
	StatusNeedsRescheduling Status = "needs_rescheduling"

	// StatusNeedsConfirmation indicates unconfirmed dates more than 75 days
	// out.
	StatusNeedsConfirmation Status = "needs_confirmation"

	// StatusDepositNeeded is the default when no other rule matches.
	StatusDepositNeeded Status = "deposit_needed"
)

// IsValid checks if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusRefundPending, StatusTripComplete, StatusTravelPending,
		StatusBookingPending, StatusTravelRepAssigned, StatusWaitingForTravelRep,
		StatusReadyToSchedule, StatusDatesScheduled, StatusNeedsRescheduling,
		StatusNeedsConfirmation, StatusDepositNeeded:
		return true
	default:
		return false
	}
}

// DepositBreakdown reconciles what the customer has paid against what the
// package calls for. Required and Remaining are nil when no package row was
// found for the customer's code.
type DepositBreakdown struct {
	ValidatedPaid        float64  `json:"validated_paid"`
	ConfirmationPaid     float64  `json:"confirmation_paid"`
	TotalPaid            float64  `json:"total_paid"`
	RequiredRefundable   *float64 `json:"required_refundable"`
	RequiredConfirmation *float64 `json:"required_confirmation"`
	RequiredTotal        *float64 `json:"required_total"`
	Remaining            *float64 `json:"remaining"`
	Complete             bool     `json:"complete"`
}

// StatusResult is the full classification for one customer record. It is
// computed per request and never persisted.
type StatusResult struct {
	Status           Status           `json:"status"`
	Label            string           `json:"status_label"`
	Message          string           `json:"message"`
	Deposits         DepositBreakdown `json:"deposits"`
	DaysUntilTravel  *int             `json:"days_until_travel"`
	OnlineScheduling bool             `json:"online_scheduling"`
	PhoneScheduling  bool             `json:"phone_scheduling"`
}
