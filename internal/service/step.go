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

// StepService implements business logic for Step and Picture operations.
// It holds the trip repo as well because creating or listing steps requires
// verifying the parent trip exists.
type StepService struct {
	trips repo.TripRepo
	steps repo.StepRepo
	log   *slog.Logger
}

// NewStepService constructs a StepService backed by the provided repos.
func NewStepService(trips repo.TripRepo, steps repo.StepRepo, log *slog.Logger) *StepService {
	return &StepService{trips: trips, steps: steps, log: log}
}

// ListByTripID returns the summaries of all steps of a trip, ordered by
// from-date ascending. Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StepService) ListByTripID(ctx context.Context, tripID string) ([]domain.StepSummary, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.StepService.ListByTripID: %w", err)
	}

	steps, err := s.steps.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StepService.ListByTripID: %w", err)
	}
	summaries := make([]domain.StepSummary, len(steps))
	for i, st := range steps {
		summaries[i] = st.Summary()
	}
	return summaries, nil
}

// GetByID returns the full detail of a single step, with its previous and
// next siblings computed against the trip's live step set.
// Returns domain.ErrNotFound if no step with that id exists under that trip.
func (s *StepService) GetByID(ctx context.Context, tripID, stepID string) (domain.Step, error) {
	step, err := s.steps.GetByID(ctx, tripID, stepID)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.GetByID: %w", err)
	}

	allSteps, err := s.steps.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.GetByID: %w", err)
	}
	step.Previous, step.Next = domain.LocateNeighbors(allSteps, step.ID)

	return step, nil
}

// Create validates the step, verifies the parent trip exists, assigns the id
// from the step name and full from-date, then persists.
// Caller-supplied pictures and cover picture are always stripped — pictures
// can only be attached through AddPicture, never at creation.
// Returns domain.ErrNotFound if the parent trip does not exist,
// domain.ErrValidation if the name or either date is missing or the date
// range is inverted.
func (s *StepService) Create(ctx context.Context, step domain.Step) (domain.Step, error) {
	if _, err := s.trips.GetByID(ctx, step.TripID); err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Create: %w", err)
	}
	if err := domain.ValidateStep(step); err != nil {
		return domain.Step{}, err
	}

	step.ID = id.WithFullDate(step.Name, step.FromDate)
	step.Pictures = nil
	step.CoverPicture = nil
	step.CreatedAt = time.Time{}
	step.UpdatedAt = time.Time{}
	step.Previous = nil
	step.Next = nil

	created, err := s.steps.Create(ctx, step)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Create: %w", err)
	}
	return created, nil
}

// Update merges the change-set onto the current step and persists the result.
// The picture list is reconciled by name before the field merge and the
// reconciled list overlaid afterwards, because a list needs structural
// reconciliation rather than a field overwrite (see domain.ReconcilePictures).
// The id and trip id can never be changed through this path.
// Returns domain.ErrNotFound if the step does not exist, domain.ErrValidation
// on an ambiguous picture name or a broken date invariant (nothing is written
// then).
//
// The read-merge-write sequence is not atomic: a concurrent update between
// the read and the write is overwritten.
func (s *StepService) Update(ctx context.Context, tripID, stepID string, changes domain.StepChanges) (domain.Step, error) {
	current, err := s.steps.GetByID(ctx, tripID, stepID)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Update: %w", err)
	}

	pictures, err := domain.ReconcilePictures(current.Pictures, changes.Pictures)
	if err != nil {
		return domain.Step{}, err
	}

	merged, err := domain.MergeStep(current, changes)
	if err != nil {
		return domain.Step{}, err
	}
	merged.Pictures = pictures

	updated, err := s.steps.Update(ctx, merged)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a step by id, scoped to the given tripID.
// Returns domain.ErrNotFound if the step does not exist under that trip.
func (s *StepService) Delete(ctx context.Context, tripID, stepID string) error {
	if err := s.steps.Delete(ctx, tripID, stepID); err != nil {
		return fmt.Errorf("service.StepService.Delete: %w", err)
	}
	return nil
}

// AddPicture appends a picture to the step's current list and persists.
// This is the only entry point that can grow the picture list; the location
// set here is server-owned from then on. No uniqueness check happens at this
// point — a duplicate name surfaces as ambiguity on the next bulk update or
// picture delete.
// Returns domain.ErrNotFound if the step does not exist.
func (s *StepService) AddPicture(ctx context.Context, tripID, stepID string, picture domain.Picture) (domain.Step, error) {
	step, err := s.steps.GetByID(ctx, tripID, stepID)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.AddPicture: %w", err)
	}

	step.Pictures = append(step.Pictures, picture)

	updated, err := s.steps.Update(ctx, step)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.AddPicture: %w", err)
	}
	return updated, nil
}

// DeletePicture removes the picture with the given name from the step and
// persists. Returns domain.ErrNotFound if the step does not exist,
// domain.ErrValidation if no picture with that name exists.
//
// More than one picture sharing the name means a prior invariant breach, so
// it is reported as a plain error rather than a validation failure — nothing
// is deleted arbitrarily.
func (s *StepService) DeletePicture(ctx context.Context, tripID, stepID, pictureName string) (domain.Step, error) {
	step, err := s.steps.GetByID(ctx, tripID, stepID)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.DeletePicture: %w", err)
	}

	index := -1
	matches := 0
	for i, p := range step.Pictures {
		if p.Name == pictureName {
			index = i
			matches++
		}
	}
	switch {
	case matches > 1:
		return domain.Step{}, fmt.Errorf(
			"service.StepService.DeletePicture: %d pictures named %q on step %s of trip %s",
			matches, pictureName, stepID, tripID)
	case matches == 0:
		return domain.Step{}, fmt.Errorf("%w: no picture named %q on this step", domain.ErrValidation, pictureName)
	}

	step.Pictures = append(step.Pictures[:index], step.Pictures[index+1:]...)

	updated, err := s.steps.Update(ctx, step)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.StepService.DeletePicture: %w", err)
	}
	return updated, nil
}
