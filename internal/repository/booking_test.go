package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

func seedBookings(t *testing.T, repo *BookingRepository, clubID string, bookings ...model.Booking) {
	t.Helper()
	err := repo.Mutate(context.Background(), clubID, func(list *[]model.Booking) error {
		*list = append(*list, bookings...)
		return nil
	})
	require.NoError(t, err)
}

func TestBookingRepository_ListSortedByStart(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(store.NewMemoryStore())
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Insert out of order
	seedBookings(t, repo, "club1",
		model.Booking{ID: "b3", StartTime: base.Add(4 * time.Hour)},
		model.Booking{ID: "b1", StartTime: base},
		model.Booking{ID: "b2", StartTime: base.Add(2 * time.Hour)},
	)

	bookings, err := repo.List(ctx, "club1")
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, "b1", bookings[0].ID)
	assert.Equal(t, "b2", bookings[1].ID)
	assert.Equal(t, "b3", bookings[2].ID)
}

func TestBookingRepository_ListEmptyClub(t *testing.T) {
	repo := NewBookingRepository(store.NewMemoryStore())

	bookings, err := repo.List(context.Background(), "nosuchclub")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingRepository_ClubsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(store.NewMemoryStore())
	now := time.Now()

	seedBookings(t, repo, "club1", model.Booking{ID: "b1", StartTime: now})
	seedBookings(t, repo, "club2", model.Booking{ID: "b2", StartTime: now})

	bookings, err := repo.List(ctx, "club1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID)

	_, err = repo.GetByID(ctx, "club1", "b2")
	assert.True(t, apperr.IsNotFound(err))
}

func TestBookingRepository_MutateOne(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(store.NewMemoryStore())

	seedBookings(t, repo, "club1", model.Booking{ID: "b1", Status: model.BookingConfirmed})

	updated, err := repo.MutateOne(ctx, "club1", "b1", func(b *model.Booking) error {
		b.Status = model.BookingCancelled
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, updated.Status)

	stored, err := repo.GetByID(ctx, "club1", "b1")
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, stored.Status)

	_, err = repo.MutateOne(ctx, "club1", "missing", func(b *model.Booking) error { return nil })
	assert.True(t, apperr.IsNotFound(err))
}

func TestBookingRepository_MutateErrorAborts(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(store.NewMemoryStore())

	seedBookings(t, repo, "club1", model.Booking{ID: "b1"})

	err := repo.Mutate(ctx, "club1", func(list *[]model.Booking) error {
		*list = nil
		return apperr.Validation("startTime", "bad")
	})
	assert.True(t, apperr.IsValidation(err))

	bookings, err := repo.List(ctx, "club1")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
