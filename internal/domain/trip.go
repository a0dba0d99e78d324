// Package domain contains the core data types for the Triplog application.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import "time"

// Trip is the top-level travel record. It owns an ordered set of Steps.
// The ID is a human-readable slug generated from the trip name and year
// (e.g. "south-america-2014") and is immutable after creation.
//
// Steps is derived at read time from the step records whose TripID matches;
// it is never persisted on the trip record itself.
type Trip struct {
	ID          string
	Name        string
	TripDate    *time.Time // date-only; nil when the trip has no date yet
	Description string
	Steps       []StepSummary
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
