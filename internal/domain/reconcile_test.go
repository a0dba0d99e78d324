package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triplog/backend/internal/domain"
)

func currentPictures() []domain.Picture {
	return []domain.Picture{
		{Name: "a", Location: "/x", Caption: "old a", ShownInGallery: false},
		{Name: "b", Location: "/y", Caption: "old b", ShownInGallery: true},
	}
}

func TestReconcilePictures_NilChangesPassesThrough(t *testing.T) {
	current := currentPictures()

	got, err := domain.ReconcilePictures(current, nil)

	require.NoError(t, err)
	assert.Equal(t, current, got)

	// The result is a defensive copy, not the same backing array.
	got[0].Caption = "mutated"
	assert.Equal(t, "old a", current[0].Caption)
}

func TestReconcilePictures_PreservesServerOwnedFields(t *testing.T) {
	got, err := domain.ReconcilePictures(currentPictures(), []domain.Picture{
		{Name: "a", Location: "/somewhere-else", Caption: "new a", ShownInGallery: true},
		{Name: "b", Caption: "old b", ShownInGallery: true},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Name and location come from the stored picture, caption and gallery
	// flag from the change entry.
	assert.Equal(t, domain.Picture{Name: "a", Location: "/x", Caption: "new a", ShownInGallery: true}, got[0])
	assert.Equal(t, domain.Picture{Name: "b", Location: "/y", Caption: "old b", ShownInGallery: true}, got[1])
}

func TestReconcilePictures_OmittedPicturesAreDropped(t *testing.T) {
	// Supplying a picture list acts as a full replacement keyed by name:
	// "b" is not resent, so it is removed.
	got, err := domain.ReconcilePictures(currentPictures(), []domain.Picture{
		{Name: "a", Caption: "kept"},
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
}

func TestReconcilePictures_EmptyListRemovesAll(t *testing.T) {
	got, err := domain.ReconcilePictures(currentPictures(), []domain.Picture{})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestReconcilePictures_UnknownNamesIgnored(t *testing.T) {
	// Pictures can only be added via the add-picture operation, never in bulk.
	got, err := domain.ReconcilePictures(currentPictures(), []domain.Picture{
		{Name: "a", Caption: "new a"},
		{Name: "b", Caption: "new b"},
		{Name: "c", Location: "/z", Caption: "smuggled in"},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}

func TestReconcilePictures_DuplicateNameFails(t *testing.T) {
	_, err := domain.ReconcilePictures(currentPictures(), []domain.Picture{
		{Name: "a", Caption: "first"},
		{Name: "a", Caption: "second"},
	})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, `"a"`)
}

func TestReconcilePictures_PreservesCurrentOrder(t *testing.T) {
	// Change entries arrive in reverse order; the result keeps current order.
	got, err := domain.ReconcilePictures(currentPictures(), []domain.Picture{
		{Name: "b", Caption: "new b"},
		{Name: "a", Caption: "new a"},
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}

func TestReconcilePictures_NoCurrentPictures(t *testing.T) {
	got, err := domain.ReconcilePictures(nil, []domain.Picture{
		{Name: "a", Caption: "nothing to match"},
	})

	require.NoError(t, err)
	assert.Empty(t, got)
}
