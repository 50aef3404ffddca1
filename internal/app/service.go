/**
 * @description
 * This file contains the core business logic for the trip-status-service. The
 * Service layer pulls customer and package rows from the external datastore,
 * runs the status engine, and shapes the payloads the voice-agent platform
 * consumes.
 *
 * Failure policy: every datastore failure reachable from a handler degrades
 * to a found:false payload carrying a spoken fallback line, because the voice
 * platform reads the body and cannot branch on HTTP status. Package lookups
 * degrade even further, to "no package constraints known".
 */
package app

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/activatemytrip/trip-status-service/internal/domain"
	"github.com/activatemytrip/trip-status-service/pkg/caspio"
)

// FallbackLine is spoken when a lookup fails for any reason.
const FallbackLine = "I had trouble looking up your account. Let me get you over to someone who can help."

const notFoundLine = "I wasn't able to find an account under that phone number. Could I get it one more time?"

const verificationLine = "I found more than one account under that phone number. Can you confirm the name on the reservation for me?"

// Store is the slice of the Caspio client the service needs; declared here so
// tests can substitute a fake datastore.
type Store interface {
	Query(ctx context.Context, table string, where *caspio.Filter, pageSize int) ([]caspio.Record, error)
}

// Service provides the business logic for customer status resolution.
type Service struct {
	store         Store
	customerTable string
	packageTable  string
	logger        *slog.Logger
	now           func() time.Time
}

// NewService creates a new status service backed by the given datastore.
func NewService(store Store, customerTable, packageTable string, logger *slog.Logger) *Service {
	return &Service{
		store:         store,
		customerTable: customerTable,
		packageTable:  packageTable,
		logger:        logger,
		now:           time.Now,
	}
}

// CustomerSummary is the identifying slice of a customer row, used in
// disambiguation lists and the basic phone lookup.
type CustomerSummary struct {
	VacID       int64      `json:"vac_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PackageCode string     `json:"pkg_code2"`
	CellPhone   string     `json:"cell_phone"`
	HomePhone   string     `json:"home_phone"`
	DateEntered *time.Time `json:"date_entered"`
}

// StatusResponse is the payload for every status-resolution endpoint.
// Status is one of "found", "unknown", "verification_needed", "error".
type StatusResponse struct {
	Found           bool                 `json:"found"`
	Status          string               `json:"status"`
	Customer        *CustomerSummary     `json:"customer,omitempty"`
	PackageStatus   *domain.StatusResult `json:"package_status,omitempty"`
	MultipleRecords bool                 `json:"multiple_records,omitempty"`
	AllRecords      []CustomerSummary    `json:"all_records,omitempty"`
	Message         string               `json:"message,omitempty"`
	Error           string               `json:"error,omitempty"`
}

// PhoneLookupResponse is the payload for the basic record lookup, which skips
// status computation entirely.
type PhoneLookupResponse struct {
	Found   bool              `json:"found"`
	Count   int               `json:"count"`
	Records []CustomerSummary `json:"records"`
	Error   string            `json:"error,omitempty"`
}

// MemoAck acknowledges a memo submission. Memos are not written to the
// external store; the reference id exists so the voice platform can cite one.
type MemoAck struct {
	Success    bool      `json:"success"`
	MemoID     string    `json:"memo_id"`
	VacID      int64     `json:"vac_id"`
	MemoType   string    `json:"memo_type"`
	ReceivedAt time.Time `json:"received_at"`
}

// errorResponse builds the degrade-to-spoken-fallback payload.
func errorResponse(detail string) StatusResponse {
	return StatusResponse{
		Found:   false,
		Status:  "error",
		Message: FallbackLine,
		Error:   detail,
	}
}

// LookupByPhone resolves a caller phone number to a status payload. A
// non-empty pkgOverride replaces the record's package code before the package
// lookup. Multiple matching records yield a verification_needed payload
// instead of a status; the caller must re-request with a specific vac_id.
func (s *Service) LookupByPhone(ctx context.Context, phone, pkgOverride string) StatusResponse {
	digits := CleanPhone(phone)
	if digits == "" {
		return errorResponse("phone number is required")
	}

	where := caspio.EqualString("cell_phone", digits).Or(caspio.EqualString("home_phone", digits))
	records, err := s.store.Query(ctx, s.customerTable, where, 0)
	if err != nil {
		s.logger.Error("customer lookup by phone failed", "error", err)
		return errorResponse(err.Error())
	}

	switch len(records) {
	case 0:
		return StatusResponse{Found: false, Status: "unknown", Message: notFoundLine}
	case 1:
		return s.buildStatus(ctx, records[0], pkgOverride)
	default:
		summaries := make([]CustomerSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, recordToSummary(rec))
		}
		// Most recent first; a missing date_entered sorts as earliest.
		sort.SliceStable(summaries, func(i, j int) bool {
			return entryTime(summaries[i]).After(entryTime(summaries[j]))
		})
		mostRecent := summaries[0]
		return StatusResponse{
			Found:           true,
			Status:          "verification_needed",
			MultipleRecords: true,
			Customer:        &mostRecent,
			AllRecords:      summaries,
			Message:         verificationLine,
		}
	}
}

// LookupByID resolves a specific account id to a status payload. A non-empty
// pkgOverride replaces the record's own package code before the package
// lookup, for callers that already disambiguated the package.
func (s *Service) LookupByID(ctx context.Context, vacID int64, pkgOverride string) StatusResponse {
	records, err := s.store.Query(ctx, s.customerTable, caspio.EqualNumber("vac_id", vacID), 0)
	if err != nil {
		s.logger.Error("customer lookup by id failed", "vac_id", vacID, "error", err)
		return errorResponse(err.Error())
	}
	if len(records) == 0 {
		return StatusResponse{Found: false, Status: "unknown", Message: notFoundLine}
	}
	return s.buildStatus(ctx, records[0], pkgOverride)
}

// BasicPhoneLookup returns matching record summaries without computing a
// status.
func (s *Service) BasicPhoneLookup(ctx context.Context, phone string) PhoneLookupResponse {
	digits := CleanPhone(phone)
	if digits == "" {
		return PhoneLookupResponse{Found: false, Records: []CustomerSummary{}, Error: "phone number is required"}
	}

	where := caspio.EqualString("cell_phone", digits).Or(caspio.EqualString("home_phone", digits))
	records, err := s.store.Query(ctx, s.customerTable, where, 0)
	if err != nil {
		s.logger.Error("basic phone lookup failed", "error", err)
		return PhoneLookupResponse{Found: false, Records: []CustomerSummary{}, Error: err.Error()}
	}

	summaries := make([]CustomerSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, recordToSummary(rec))
	}
	return PhoneLookupResponse{Found: len(summaries) > 0, Count: len(summaries), Records: summaries}
}

// CreateMemo acknowledges a memo from the voice platform. Nothing is written
// to the external store; the memo is logged for operator follow-up.
func (s *Service) CreateMemo(ctx context.Context, vacID int64, memoType, details string) MemoAck {
	ack := MemoAck{
		Success:    true,
		MemoID:     uuid.NewString(),
		VacID:      vacID,
		MemoType:   memoType,
		ReceivedAt: s.now(),
	}
	s.logger.Info("memo received", "memo_id", ack.MemoID, "vac_id", vacID, "memo_type", memoType, "details", details)
	return ack
}

// buildStatus runs the package lookup and the status engine for one record.
// The override is canonicalized here so the echoed code, the package lookup,
// and the channel classification all see the same form.
func (s *Service) buildStatus(ctx context.Context, rec caspio.Record, pkgOverride string) StatusResponse {
	customer := recordToCustomer(rec)
	if pkgOverride = strings.ToUpper(strings.TrimSpace(pkgOverride)); pkgOverride != "" {
		customer.PackageCode = pkgOverride
	}

	pkg := s.resolvePackage(ctx, customer.PackageCode)
	result := DetermineStatus(customer, pkg, s.now())

	summary := recordToSummary(rec)
	summary.PackageCode = customer.PackageCode
	return StatusResponse{
		Found:         true,
		Status:        "found",
		Customer:      &summary,
		PackageStatus: &result,
		Message:       result.Message,
	}
}

// resolvePackage fetches the deposit schedule for a package code. Any failure
// is swallowed: a nil result means "no package constraints known", which the
// deposit reconciliation handles with a weaker completion policy.
func (s *Service) resolvePackage(ctx context.Context, code string) *domain.PackageInfo {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}

	records, err := s.store.Query(ctx, s.packageTable, caspio.EqualString("pkg_code", code), 1)
	if err != nil {
		s.logger.Warn("package lookup failed, proceeding without package info", "pkg_code", code, "error", err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	rec := records[0]
	info := &domain.PackageInfo{
		Code:            code,
		RefundableDep:   rec.Num("ref_dep"),
		ConfirmationDep: rec.Num("deposit"),
		Destination:     rec.Str("destination"),
		Nights:          int(rec.Num("num_nights")),
		VacationType:    rec.Str("vac_type"),
		Description:     rec.Str("description"),
	}
	// Legacy package rows use alternate column names.
	if info.Destination == "" {
		info.Destination = rec.Str("dest_city")
	}
	if info.Nights == 0 {
		info.Nights = int(rec.Num("nights"))
	}
	return info
}

// recordToCustomer maps a raw customer row onto the domain model.
func recordToCustomer(rec caspio.Record) domain.CustomerRecord {
	return domain.CustomerRecord{
		VacID:         int64(rec.Num("vac_id")),
		FirstName:     rec.Str("first_name"),
		LastName:      rec.Str("last_name"),
		Email:         rec.Str("email"),
		CellPhone:     rec.Str("cell_phone"),
		HomePhone:     rec.Str("home_phone"),
		PackageCode:   rec.Str("pkg_code2"),
		ValidatedDep:  rec.Num("val_dep"),
		ConfirmedDep:  rec.Num("conf_deposit"),
		TravelDate:    rec.Date("asgn_trv_dt"),
		TravelRep:     rec.Str("tm"),
		ConfValidCode: rec.Str("conf_valid_code"),
		CashBackAmt:   rec.Num("cash_back_amt"),
		FinalDocDate:  rec.Date("final_doc_dt"),
		ItinPrintDate: rec.Date("itin_print_dt"),
		DecisionReady: rec.Bool("decision_ready"),
		HotelDate:     rec.Date("hotel_dt"),
		AgencyDate:    rec.Date("agency_dt"),
		DateEntered:   rec.Date("date_entered"),
	}
}

func recordToSummary(rec caspio.Record) CustomerSummary {
	return CustomerSummary{
		VacID:       int64(rec.Num("vac_id")),
		FirstName:   rec.Str("first_name"),
		LastName:    rec.Str("last_name"),
		Email:       rec.Str("email"),
		PackageCode: rec.Str("pkg_code2"),
		CellPhone:   rec.Str("cell_phone"),
		HomePhone:   rec.Str("home_phone"),
		DateEntered: rec.Date("date_entered"),
	}
}

// entryTime treats a missing date_entered as the zero time so it sorts last
// in a most-recent-first ordering.
func entryTime(s CustomerSummary) time.Time {
	if s.DateEntered == nil {
		return time.Time{}
	}
	return *s.DateEntered
}
