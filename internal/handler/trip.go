package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/triplog/backend/internal/domain"
)

// CreateTripRequest is the body of POST /trips.
// Only tripName is required; any caller-supplied id or timestamps are not
// even part of the wire type.
type CreateTripRequest struct {
	TripName    string              `json:"tripName"`
	TripDate    *openapi_types.Date `json:"tripDate,omitempty"`
	Description *string             `json:"description,omitempty"`
}

// UpdateTripRequest is the body of PUT /trips/{tripId}.
// Every field is optional: an absent field leaves the stored value untouched.
type UpdateTripRequest struct {
	TripName    *string             `json:"tripName,omitempty"`
	TripDate    *openapi_types.Date `json:"tripDate,omitempty"`
	Description *string             `json:"description,omitempty"`
}

// TripResponse is the wire form of a trip.
type TripResponse struct {
	TripID      string                `json:"tripId"`
	TripName    string                `json:"tripName"`
	TripDate    *openapi_types.Date   `json:"tripDate,omitempty"`
	Description *string               `json:"description,omitempty"`
	Steps       []StepSummaryResponse `json:"steps,omitempty"`
	Created     time.Time             `json:"created"`
	LastUpdated time.Time             `json:"lastUpdated"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip := domain.Trip{
		Name:        body.TripName,
		Description: derefString(body.Description),
	}
	if body.TripDate != nil {
		d := body.TripDate.Time
		trip.TripDate = &d
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. Every trip comes with its steps attached.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeInternal(w)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
// The body is a sparse change-set: absent fields keep their stored values.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body UpdateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	changes := domain.TripChanges{
		Name:        body.TripName,
		Description: body.Description,
	}
	if body.TripDate != nil {
		d := body.TripDate.Time
		changes.TripDate = &d
	}

	updated, err := s.trips.Update(r.Context(), chi.URLParam(r, "tripId"), changes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}.
// Deleting an existing trip also removes all its steps.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	err := s.trips.Delete(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		writeInternal(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// tripToResponse converts a domain.Trip into its wire form.
// Empty strings become nil pointers for optional JSON fields so they are
// omitted from the response rather than sent as empty strings.
func tripToResponse(t domain.Trip) TripResponse {
	resp := TripResponse{
		TripID:      t.ID,
		TripName:    t.Name,
		Description: nilIfEmpty(t.Description),
		Created:     t.CreatedAt,
		LastUpdated: t.UpdatedAt,
	}
	if t.TripDate != nil {
		d := openapi_types.Date{Time: *t.TripDate}
		resp.TripDate = &d
	}
	if t.Steps != nil {
		steps := make([]StepSummaryResponse, len(t.Steps))
		for i, st := range t.Steps {
			steps[i] = stepSummaryToResponse(st)
		}
		resp.Steps = steps
	}
	return resp
}

// derefString safely dereferences a *string, returning "" when nil.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nilIfEmpty converts an empty string to a nil pointer.
// Used when mapping domain strings to optional API response fields.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
