// Package handler implements the HTTP handlers for the Triplog API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, step.go) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/triplog/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, tripID string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, tripID string, changes domain.TripChanges) (domain.Trip, error)
	Delete(ctx context.Context, tripID string) error
}

// StepServicer defines the business operations the step handlers depend on.
type StepServicer interface {
	ListByTripID(ctx context.Context, tripID string) ([]domain.StepSummary, error)
	GetByID(ctx context.Context, tripID, stepID string) (domain.Step, error)
	Create(ctx context.Context, step domain.Step) (domain.Step, error)
	Update(ctx context.Context, tripID, stepID string, changes domain.StepChanges) (domain.Step, error)
	Delete(ctx context.Context, tripID, stepID string) error
	AddPicture(ctx context.Context, tripID, stepID string, picture domain.Picture) (domain.Step, error)
	DeletePicture(ctx context.Context, tripID, stepID, pictureName string) (domain.Step, error)
}

// Server holds the handlers for all API endpoints.
// Wire it into a router with NewRouter.
type Server struct {
	trips TripServicer
	steps StepServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, steps StepServicer) *Server {
	return &Server{trips: trips, steps: steps}
}

// writeJSON writes v as a JSON response with the given status code.
// Encoding errors at this point cannot be reported to the client anymore
// (the header is already written), so they are silently dropped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v.
// Unknown fields are rejected so typos in field names fail loudly instead of
// being silently treated as "absent" by the merge path.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
