// Package service contains the business logic for the Triplog API.
// Services validate inputs, assign identities, merge change-sets, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/triplog/backend/internal/domain"
	"github.com/triplog/backend/internal/id"
	"github.com/triplog/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// It holds the step repo as well because reads attach the trip's steps and
// deleting a trip cascades to its steps.
type TripService struct {
	trips repo.TripRepo
	steps repo.StepRepo
	log   *slog.Logger
}

// NewTripService constructs a TripService backed by the provided repos.
// The logger is required: cascade-delete failures are logged, not returned.
func NewTripService(trips repo.TripRepo, steps repo.StepRepo, log *slog.Logger) *TripService {
	return &TripService{trips: trips, steps: steps, log: log}
}

// Create validates and persists a new trip. The id is generated from the
// trip name and year; caller-supplied id, timestamps, and steps are ignored.
// Returns domain.ErrValidation if the name is missing.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := domain.ValidateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	var tripDate time.Time
	if trip.TripDate != nil {
		tripDate = *trip.TripDate
	}
	trip.ID = id.WithYear(trip.Name, tripDate)
	trip.Steps = nil
	trip.CreatedAt = time.Time{}
	trip.UpdatedAt = time.Time{}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	created.Steps = []domain.StepSummary{}
	return created, nil
}

// GetByID returns a single trip with its steps attached.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *TripService) GetByID(ctx context.Context, tripID string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if err := s.attachSteps(ctx, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips, each with its steps attached.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	for i := range trips {
		if err := s.attachSteps(ctx, &trips[i]); err != nil {
			return nil, fmt.Errorf("service.TripService.List: %w", err)
		}
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update merges the change-set onto the current trip and persists the result.
// Absent change fields leave the stored values untouched; the id and
// timestamps can never be changed through this path.
// Returns domain.ErrNotFound if the trip does not exist, domain.ErrValidation
// if the merged result violates an invariant (nothing is written then).
//
// The read-merge-write sequence is not atomic: a concurrent update between
// the read and the write is overwritten.
func (s *TripService) Update(ctx context.Context, tripID string, changes domain.TripChanges) (domain.Trip, error) {
	current, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	merged, err := domain.MergeTrip(current, changes)
	if err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, merged)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip and cascades to its steps.
// Returns domain.ErrNotFound if the trip does not exist.
//
// The cascade fires only after the trip record itself was removed, and its
// outcome does not affect the reported result: once the trip is gone the
// caller's delete has succeeded, so a failed cascade is logged and swallowed.
// The two writes are not transactional — a crash in between leaves orphaned
// step records, which a later re-run of the cascade cleans up.
func (s *TripService) Delete(ctx context.Context, tripID string) error {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	count, err := s.steps.DeleteByTripID(ctx, tripID)
	if err != nil {
		s.log.WarnContext(ctx, "cascade delete of steps failed",
			"trip_id", tripID,
			"error", err,
		)
		return nil
	}
	s.log.InfoContext(ctx, "trip deleted", "trip_id", tripID, "steps_deleted", count)
	return nil
}

// attachSteps loads the trip's steps and attaches their summaries.
// The step list is always non-nil on the returned trip.
func (s *TripService) attachSteps(ctx context.Context, trip *domain.Trip) error {
	steps, err := s.steps.ListByTripID(ctx, trip.ID)
	if err != nil {
		return err
	}
	summaries := make([]domain.StepSummary, len(steps))
	for i, st := range steps {
		summaries[i] = st.Summary()
	}
	trip.Steps = summaries
	return nil
}
