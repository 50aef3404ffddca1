/**
 * @description
 * This file contains the HTTP handler functions for the trip-status-service.
 * Handlers are responsible for parsing incoming requests, calling the
 * appropriate business logic in the service layer, and writing the HTTP
 * response.
 *
 * Every handler answers 200. The voice-agent platform reads the body and
 * cannot branch on HTTP status, so failures travel inside the payload as
 * found:false with a spoken fallback line; only a panic reaching the
 * recoverer produces a 500.
 */
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/activatemytrip/trip-status-service/internal/app"
)

// Handler holds the application service that handlers will interact with.
type Handler struct {
	service *app.Service
	version string
}

// NewHandler creates a new Handler with the given service.
func NewHandler(service *app.Service, version string) *Handler {
	return &Handler{service: service, version: version}
}

// handleHealth reports service liveness.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "trip-status-service",
		"version":   h.version,
	})
}

// handleCustomerStatus resolves the caller's phone number to a status
// payload. GET /api/customer/status?phone=...
func (h *Handler) handleCustomerStatus(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	respondWithJSON(w, http.StatusOK, h.service.LookupByPhone(r.Context(), phone, ""))
}

// handleStatusByID resolves a specific account id to a status payload.
// POST /api/customer/status-by-id {vac_id, pkg_code2?}
func (h *Handler) handleStatusByID(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VacID    int64  `json:"vac_id"`
		PkgCode2 string `json:"pkg_code2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusOK, app.StatusResponse{
			Found: false, Status: "error", Message: app.FallbackLine, Error: "invalid request body",
		})
		return
	}
	if req.VacID == 0 {
		respondWithJSON(w, http.StatusOK, app.StatusResponse{
			Found: false, Status: "error", Message: app.FallbackLine, Error: "vac_id is required",
		})
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.LookupByID(r.Context(), req.VacID, req.PkgCode2))
}

// handleRimsPhoneLookup returns matching records without status computation.
// POST /api/rims/phone-lookup {phone_number}
func (h *Handler) handleRimsPhoneLookup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusOK, app.PhoneLookupResponse{Found: false, Records: []app.CustomerSummary{}, Error: "invalid request body"})
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.BasicPhoneLookup(r.Context(), req.PhoneNumber))
}

// handleRimsCustomerStatus resolves either an account id or a phone number to
// a full status payload. POST /api/rims/customer-status
// {vac_id | phone_number, pkg_code2?}
func (h *Handler) handleRimsCustomerStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VacID       int64  `json:"vac_id"`
		PhoneNumber string `json:"phone_number"`
		PkgCode2    string `json:"pkg_code2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusOK, app.StatusResponse{
			Found: false, Status: "error", Message: app.FallbackLine, Error: "invalid request body",
		})
		return
	}

	// An explicit account id wins over a phone number when both are present.
	if req.VacID != 0 {
		respondWithJSON(w, http.StatusOK, h.service.LookupByID(r.Context(), req.VacID, req.PkgCode2))
		return
	}
	if req.PhoneNumber != "" {
		respondWithJSON(w, http.StatusOK, h.service.LookupByPhone(r.Context(), req.PhoneNumber, req.PkgCode2))
		return
	}
	respondWithJSON(w, http.StatusOK, app.StatusResponse{
		Found: false, Status: "error", Message: app.FallbackLine, Error: "vac_id or phone_number is required",
	})
}

// handleCreateMemo acknowledges a memo submission.
// POST /api/memos/create {vac_id, memo_type, details}
func (h *Handler) handleCreateMemo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VacID    int64  `json:"vac_id"`
		MemoType string `json:"memo_type"`
		Details  string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusOK, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	if req.VacID == 0 || req.MemoType == "" {
		respondWithJSON(w, http.StatusOK, map[string]any{"success": false, "error": "vac_id and memo_type are required"})
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.CreateMemo(r.Context(), req.VacID, req.MemoType, req.Details))
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
