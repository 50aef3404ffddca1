/**
 * @description
 * The status engine: a pure, deterministic classification of one customer
 * record (plus the package's deposit schedule, when known) into a lifecycle
 * status, a scripted agent line, and a deposit breakdown.
 *
 * The heart of it is an ordered decision list. Rules are evaluated top to
 * bottom and the first match wins, so ordering is load-bearing: a record
 * matching both "trip complete" and "travel pending" is always classified
 * trip complete because that rule sits higher.
 */
package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/activatemytrip/trip-status-service/internal/domain"
)

// Package codes whose customers schedule travel dates on the web portal.
var onlineSchedulingCodes = map[string]bool{
	"ECRA": true,
	"ECRB": true,
	"ECRP": true,
	"ECRV": true,
}

// isOnlineScheduling reports whether the package is scheduled at
// activatemytrip.com.
func isOnlineScheduling(code string) bool {
	return onlineSchedulingCodes[strings.ToUpper(strings.TrimSpace(code))]
}

// isPhoneScheduling reports whether the package is scheduled over the phone:
// two exact codes plus two legacy code families matched by prefix.
func isPhoneScheduling(code string) bool {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "EM" || c == "EMD" {
		return true
	}
	return strings.HasPrefix(c, "CB") || strings.HasPrefix(c, "SB")
}

// daysUntilTravel computes a signed day count with both endpoints truncated
// to local midnight, rounding partial days up. Nil when no travel date is set.
func daysUntilTravel(travel *time.Time, now time.Time) *int {
	if travel == nil {
		return nil
	}
	target := midnight(*travel)
	base := midnight(now)
	days := int(math.Ceil(target.Sub(base).Hours() / 24))
	return &days
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// reconcileDeposits compares what the customer has paid against the package's
// deposit schedule. Completion never looks at travel dates.
//
// Policy, in order:
//  1. expected known and total paid covers it -> complete.
//  2. single-deposit package -> complete if either paid bucket alone covers
//     the one required amount (customers sometimes pay the full amount into
//     the wrong bucket).
//  3. package unknown -> complete if anything at all was paid.
//  4. otherwise incomplete.
func reconcileDeposits(rec domain.CustomerRecord, pkg *domain.PackageInfo) domain.DepositBreakdown {
	b := domain.DepositBreakdown{
		ValidatedPaid:    rec.ValidatedDep,
		ConfirmationPaid: rec.ConfirmedDep,
		TotalPaid:        rec.ValidatedDep + rec.ConfirmedDep,
	}

	if pkg == nil {
		b.Complete = rec.ValidatedDep > 0 || rec.ConfirmedDep > 0
		return b
	}

	refundable := pkg.RefundableDep
	confirmation := pkg.ConfirmationDep
	expected := pkg.ExpectedTotal()

	b.RequiredRefundable = &refundable
	b.RequiredConfirmation = &confirmation
	b.RequiredTotal = &expected

	remaining := math.Max(0, expected-b.TotalPaid)
	b.Remaining = &remaining

	switch {
	case b.TotalPaid >= expected:
		b.Complete = true
	case (refundable > 0) != (confirmation > 0):
		// Single-deposit package: either bucket alone may satisfy it.
		single := math.Max(refundable, confirmation)
		b.Complete = rec.ValidatedDep >= single || rec.ConfirmedDep >= single
	}

	return b
}

// evalContext carries the derived values every rule predicate looks at.
type evalContext struct {
	rec      domain.CustomerRecord
	deposits domain.DepositBreakdown
	days     *int
	online   bool
	phone    bool
}

// rule is one entry of the ordered decision list.
type rule struct {
	status  domain.Status
	label   string
	matches func(evalContext) bool
	message func(evalContext) string
}

// statusRules is the decision list, highest priority first. Do not reorder:
// earlier rules deliberately shadow later ones.
var statusRules = []rule{
	{
		status: domain.StatusRefundPending,
		label:  "Refund Pending",
		matches: func(c evalContext) bool {
			return c.rec.CashBackAmt > 0 && c.rec.FinalDocDate == nil
		},
		message: func(c evalContext) string {
			return "I see there's a pending refund matter on your account. Let me connect you with our accounts team to get that taken care of."
		},
	},
	{
		status: domain.StatusTripComplete,
		label:  "Trip Complete",
		matches: func(c evalContext) bool {
			if c.rec.FinalDocDate != nil {
				return true
			}
			return c.days != nil && *c.days < -7
		},
		message: func(c evalContext) string {
			return "It looks like you've already traveled with us. I hope you had a wonderful trip! Is there something from your stay I can help with?"
		},
	},
	{
		status: domain.StatusTravelPending,
		label:  "Travel Pending",
		matches: func(c evalContext) bool {
			return c.rec.HotelDate != nil && c.rec.AgencyDate != nil &&
				c.days != nil && *c.days >= 0 && *c.days <= 14
		},
		message: func(c evalContext) string {
			return fmt.Sprintf("You're all booked and your itinerary has been sent. Your travel is just %d days away, so keep an eye on your email for final details.", *c.days)
		},
	},
	{
		status: domain.StatusBookingPending,
		label:  "Booking Pending",
		matches: func(c evalContext) bool {
			return c.rec.ItinPrintDate != nil && c.days != nil && *c.days <= 45
		},
		message: func(c evalContext) string {
			return "Your itinerary has been printed and our team is finalizing your booking now. You'll receive confirmation shortly."
		},
	},
	{
		status: domain.StatusTravelRepAssigned,
		label:  "Travel Rep Assigned",
		matches: func(c evalContext) bool {
			return c.rec.TravelRep != "" && c.days != nil && *c.days <= 75
		},
		message: func(c evalContext) string {
			return fmt.Sprintf("Your travel representative %s is handling your file. Watch for a call from an 805 area code to finalize your arrangements.", c.rec.TravelRep)
		},
	},
	{
		status: domain.StatusWaitingForTravelRep,
		label:  "Waiting For Travel Rep",
		matches: func(c evalContext) bool {
			return c.deposits.Complete && c.rec.TravelDate != nil &&
				c.rec.TravelRep == "" && c.days != nil && *c.days <= 75
		},
		message: func(c evalContext) string {
			return "Your deposits are in and your dates are set. A travel representative will be assigned to your file shortly."
		},
	},
	{
		status: domain.StatusReadyToSchedule,
		label:  "Ready to Schedule",
		matches: func(c evalContext) bool {
			return c.deposits.Complete && c.rec.TravelDate == nil
		},
		message: func(c evalContext) string {
			switch {
			case c.online:
				return "Great news, your deposit is complete and you're ready to schedule! Just visit activatemytrip.com to pick your travel dates."
			case c.phone:
				return "Great news, your deposit is complete and you're ready to schedule your travel dates. I can transfer you to our scheduling team right now if you'd like."
			default:
				return "Great news, your deposit is complete and you're ready to schedule. Our scheduling team will work with you to get your dates on the calendar."
			}
		},
	},
	{
		status: domain.StatusDatesScheduled,
		label:  "Dates Scheduled",
		matches: func(c evalContext) bool {
			return c.deposits.Complete && c.rec.TravelDate != nil &&
				c.rec.TravelRep == "" && c.rec.ConfValidCode == "CONFIRM" &&
				c.days != nil && *c.days > 75
		},
		message: func(c evalContext) string {
			return "Your travel dates are confirmed. A travel representative will be assigned to your file as your departure gets closer."
		},
	},
	{
		status: domain.StatusNeedsRescheduling,
		label:  "Needs Rescheduling",
		matches: func(c evalContext) bool {
			return c.rec.TravelDate != nil && c.rec.ConfValidCode != "CONFIRM" &&
				!c.rec.DecisionReady && c.days != nil && *c.days <= 75
		},
		message: func(c evalContext) string {
			return "Your travel dates are coming up but haven't been confirmed, so they'll need to be rescheduled. I can transfer you to our scheduling team to pick new dates."
		},
	},
	{
		status: domain.StatusNeedsConfirmation,
		label:  "Needs Confirmation",
		matches: func(c evalContext) bool {
			return c.rec.TravelDate != nil && c.rec.ConfValidCode != "CONFIRM" &&
				!c.rec.DecisionReady && c.days != nil && *c.days > 75
		},
		message: func(c evalContext) string {
			return "Your travel dates are on file but still need to be confirmed. I can transfer you to our scheduling team to confirm them now."
		},
	},
	{
		status:  domain.StatusDepositNeeded,
		label:   "Deposit Needed",
		matches: func(c evalContext) bool { return true },
		message: func(c evalContext) string {
			switch {
			case c.online:
				return "To get your trip moving, a deposit is still needed on your account. You can take care of that anytime at activatemytrip.com."
			case c.phone:
				return "To get your trip moving, a deposit is still needed on your account. I can transfer you to complete it over the phone right now."
			default:
				return "To get your trip moving, a deposit is still needed on your account. Our team will follow up with payment options."
			}
		},
	},
}

// DetermineStatus classifies one customer record. pkg may be nil when no
// package row matched the customer's code; now is injected so the
// date arithmetic is deterministic under test.
func DetermineStatus(rec domain.CustomerRecord, pkg *domain.PackageInfo, now time.Time) domain.StatusResult {
	ctx := evalContext{
		rec:      rec,
		deposits: reconcileDeposits(rec, pkg),
		days:     daysUntilTravel(rec.TravelDate, now),
		online:   isOnlineScheduling(rec.PackageCode),
		phone:    isPhoneScheduling(rec.PackageCode),
	}

	for _, r := range statusRules {
		if r.matches(ctx) {
			return domain.StatusResult{
				Status:           r.status,
				Label:            r.label,
				Message:          r.message(ctx),
				Deposits:         ctx.deposits,
				DaysUntilTravel:  ctx.days,
				OnlineScheduling: ctx.online,
				PhoneScheduling:  ctx.phone,
			}
		}
	}

	// Unreachable: the last rule always matches.
	panic("status decision list fell through")
}
