package domain

import "time"

// Step is a dated leg of a Trip. The ID is a slug generated from the step
// name and its full from-date (e.g. "lake-titicaca-2014-03-28") so that two
// same-named steps on different days do not collide. ID and TripID are
// immutable once set.
//
// Previous and Next are derived from the from-date ordering of the owning
// trip's live step set on every single-step read; they are never persisted
// (see LocateNeighbors).
type Step struct {
	ID           string
	TripID       string
	Name         string
	FromDate     time.Time // date-only
	ToDate       time.Time // date-only; invariant: FromDate <= ToDate
	Description  string
	Pictures     []Picture
	CoverPicture *Picture
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Derived, never persisted.
	Previous *StepSummary
	Next     *StepSummary
}

// StepSummary is the lightweight view of a Step: identity, name, and dates.
// It is what gets embedded in another record (a trip's step list, a step's
// previous/next references), keeping those references bounded instead of
// recursively embedding full steps.
type StepSummary struct {
	ID       string
	TripID   string
	Name     string
	FromDate time.Time
	ToDate   time.Time
}

// Summary reduces the step to its StepSummary view.
func (s Step) Summary() StepSummary {
	return StepSummary{
		ID:       s.ID,
		TripID:   s.TripID,
		Name:     s.Name,
		FromDate: s.FromDate,
		ToDate:   s.ToDate,
	}
}
