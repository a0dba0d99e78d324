package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triplog/backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func currentTrip() domain.Trip {
	return domain.Trip{
		ID:          "south-america-2014",
		Name:        "South America",
		TripDate:    ptr(date(2014, 3, 1)),
		Description: "six months on the road",
		CreatedAt:   date(2014, 2, 1),
		UpdatedAt:   date(2014, 2, 15),
	}
}

func currentStep() domain.Step {
	return domain.Step{
		ID:          "lake-titicaca-2014-03-28",
		TripID:      "south-america-2014",
		Name:        "Lake Titicaca",
		FromDate:    date(2014, 3, 28),
		ToDate:      date(2014, 3, 30),
		Description: "up in the highlands",
		Pictures: []domain.Picture{
			{Name: "sunrise", Location: "/img/sunrise.jpg", Caption: "first light", ShownInGallery: true},
		},
		CreatedAt: date(2014, 3, 1),
		UpdatedAt: date(2014, 3, 2),
	}
}

// ---- MergeTrip -------------------------------------------------------------

func TestMergeTrip_AbsentFieldsUntouched(t *testing.T) {
	current := currentTrip()

	merged, err := domain.MergeTrip(current, domain.TripChanges{
		Description: ptr("a new description"),
	})

	require.NoError(t, err)
	assert.Equal(t, "a new description", merged.Description)
	// Everything not named in the change-set keeps its current value.
	assert.Equal(t, current.Name, merged.Name)
	assert.Equal(t, current.TripDate, merged.TripDate)
	assert.Equal(t, current.ID, merged.ID)
	assert.Equal(t, current.CreatedAt, merged.CreatedAt)
	assert.Equal(t, current.UpdatedAt, merged.UpdatedAt)
}

func TestMergeTrip_AllFields(t *testing.T) {
	current := currentTrip()
	newDate := date(2015, 1, 10)

	merged, err := domain.MergeTrip(current, domain.TripChanges{
		Name:        ptr("Patagonia"),
		TripDate:    &newDate,
		Description: ptr("further south"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Patagonia", merged.Name)
	require.NotNil(t, merged.TripDate)
	assert.True(t, merged.TripDate.Equal(newDate))
	assert.Equal(t, "further south", merged.Description)
	// Identity survives any change-set: it is not representable in TripChanges.
	assert.Equal(t, current.ID, merged.ID)
}

func TestMergeTrip_EmptyChangesIsIdentity(t *testing.T) {
	current := currentTrip()

	merged, err := domain.MergeTrip(current, domain.TripChanges{})

	require.NoError(t, err)
	assert.Equal(t, current, merged)
}

func TestMergeTrip_NameCannotBeBlanked(t *testing.T) {
	current := currentTrip()

	_, err := domain.MergeTrip(current, domain.TripChanges{Name: ptr("   ")})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "name")
}

func TestMergeTrip_InvalidResultReturnsCurrentUnchanged(t *testing.T) {
	current := currentTrip()

	got, err := domain.MergeTrip(current, domain.TripChanges{Name: ptr("")})

	require.Error(t, err)
	assert.Equal(t, current, got, "a failed merge must not partially apply")
}

// ---- MergeStep -------------------------------------------------------------

func TestMergeStep_AbsentFieldsUntouched(t *testing.T) {
	current := currentStep()

	merged, err := domain.MergeStep(current, domain.StepChanges{
		Description: ptr("changed"),
	})

	require.NoError(t, err)
	assert.Equal(t, "changed", merged.Description)
	assert.Equal(t, current.Name, merged.Name)
	assert.True(t, merged.FromDate.Equal(current.FromDate))
	assert.True(t, merged.ToDate.Equal(current.ToDate))
	assert.Equal(t, current.ID, merged.ID)
	assert.Equal(t, current.TripID, merged.TripID)
}

func TestMergeStep_DoesNotTouchPictures(t *testing.T) {
	current := currentStep()

	merged, err := domain.MergeStep(current, domain.StepChanges{
		Name: ptr("Puno"),
		Pictures: []domain.Picture{
			{Name: "other", Caption: "should be ignored here"},
		},
	})

	require.NoError(t, err)
	// Pictures go through ReconcilePictures, never through the field merge.
	assert.Equal(t, current.Pictures, merged.Pictures)
}

func TestMergeStep_CoverPicture(t *testing.T) {
	current := currentStep()
	cover := domain.Picture{Name: "sunrise", Location: "/img/sunrise.jpg", ShownInGallery: true}

	merged, err := domain.MergeStep(current, domain.StepChanges{CoverPicture: &cover})

	require.NoError(t, err)
	require.NotNil(t, merged.CoverPicture)
	assert.Equal(t, cover, *merged.CoverPicture)
}

func TestMergeStep_InvertedDateRangeRejected(t *testing.T) {
	current := currentStep()

	got, err := domain.MergeStep(current, domain.StepChanges{
		ToDate: ptr(date(2014, 3, 27)), // before the current FromDate
	})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "fromDate")
	assert.Equal(t, current, got, "a failed merge must not partially apply")
}

func TestMergeStep_DateRangeCanBeMovedTogether(t *testing.T) {
	current := currentStep()

	merged, err := domain.MergeStep(current, domain.StepChanges{
		FromDate: ptr(date(2014, 4, 1)),
		ToDate:   ptr(date(2014, 4, 1)), // equal dates are allowed
	})

	require.NoError(t, err)
	assert.True(t, merged.FromDate.Equal(merged.ToDate))
}

// ---- ValidateStep ----------------------------------------------------------

func TestValidateStep_RequiresNameAndDates(t *testing.T) {
	step := currentStep()
	step.Name = ""
	require.ErrorIs(t, domain.ValidateStep(step), domain.ErrValidation)

	step = currentStep()
	step.FromDate = time.Time{}
	require.ErrorIs(t, domain.ValidateStep(step), domain.ErrValidation)

	step = currentStep()
	step.ToDate = time.Time{}
	require.ErrorIs(t, domain.ValidateStep(step), domain.ErrValidation)

	require.NoError(t, domain.ValidateStep(currentStep()))
}
