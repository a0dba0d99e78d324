package domain

import (
	"fmt"
	"strings"
	"time"
)

// TripChanges is a sparse change-set for a Trip. A nil field means "leave the
// current value untouched"; a non-nil field overwrites it. Identity and
// server-assigned timestamps are deliberately not representable here, so a
// caller can never smuggle them through an update.
type TripChanges struct {
	Name        *string
	TripDate    *time.Time
	Description *string
}

// StepChanges is a sparse change-set for a Step. A nil field means "leave the
// current value untouched". ID and TripID are not representable.
//
// Pictures is special: a nil slice means the picture list is absent from the
// change-set and passes through unchanged, while a non-nil slice (even empty)
// is reconciled against the current list by ReconcilePictures — it is not
// applied by MergeStep itself, because a list needs structural reconciliation
// rather than a field overwrite.
type StepChanges struct {
	Name         *string
	FromDate     *time.Time
	ToDate       *time.Time
	Description  *string
	CoverPicture *Picture
	Pictures     []Picture
}

// MergeTrip applies the change-set onto current field by field and validates
// the result. Absent (nil) fields keep their current value. The merged trip
// is returned only if it is fully valid; on a validation failure current is
// returned unmodified alongside the error.
func MergeTrip(current Trip, changes TripChanges) (Trip, error) {
	merged := current

	if changes.Name != nil {
		merged.Name = *changes.Name
	}
	if changes.TripDate != nil {
		d := *changes.TripDate
		merged.TripDate = &d
	}
	if changes.Description != nil {
		merged.Description = *changes.Description
	}

	if err := ValidateTrip(merged); err != nil {
		return current, err
	}
	return merged, nil
}

// MergeStep applies the change-set onto current field by field and validates
// the result. Absent (nil) fields keep their current value. The picture list
// is intentionally not touched here — see StepChanges.Pictures.
func MergeStep(current Step, changes StepChanges) (Step, error) {
	merged := current

	if changes.Name != nil {
		merged.Name = *changes.Name
	}
	if changes.FromDate != nil {
		merged.FromDate = *changes.FromDate
	}
	if changes.ToDate != nil {
		merged.ToDate = *changes.ToDate
	}
	if changes.Description != nil {
		merged.Description = *changes.Description
	}
	if changes.CoverPicture != nil {
		p := *changes.CoverPicture
		merged.CoverPicture = &p
	}

	if err := ValidateStep(merged); err != nil {
		return current, err
	}
	return merged, nil
}

// ValidateTrip enforces the trip invariants:
//   - Name must be non-empty (whitespace-only names are rejected).
func ValidateTrip(trip Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// ValidateStep enforces the step invariants shared by create and update:
//   - Name must be non-empty (whitespace-only names are rejected).
//   - FromDate and ToDate must both be set.
//   - FromDate must be before or equal to ToDate.
func ValidateStep(step Step) error {
	if strings.TrimSpace(step.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if step.FromDate.IsZero() || step.ToDate.IsZero() {
		return fmt.Errorf("%w: fromDate and toDate are required", ErrValidation)
	}
	if step.FromDate.After(step.ToDate) {
		return fmt.Errorf("%w: fromDate must be before or equal toDate", ErrValidation)
	}
	return nil
}
