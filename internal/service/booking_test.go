package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
)

func bookingInput(club *model.Club, tableID string, start, end time.Time) CreateBookingInput {
	return CreateBookingInput{
		ClubID:     club.ID,
		TableID:    tableID,
		PlayerName: "Asha",
		StartTime:  start,
		EndTime:    end,
		CreatedBy:  "owner1",
	}
}

// TestCreateBooking_RoundTrip verifies a created booking comes back from
// the day listing.
func TestCreateBooking_RoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 2, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	result, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)
	require.Len(t, result.Bookings, 1)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, model.BookingConfirmed, result.Bookings[0].Status)

	listed, err := env.bookings.ListBookingsForDate(ctx, club.ID, start)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, result.Bookings[0].ID, listed[0].ID)
}

// TestCreateBooking_OverlapRejected covers the overlap matrix for a
// single table.
func TestCreateBooking_OverlapRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	tableID := club.Tables[0].ID
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	_, err := env.bookings.CreateBooking(ctx, bookingInput(club, tableID, at(2), at(4)))
	require.NoError(t, err)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{"identical slot", at(2), at(4), true},
		{"straddles start", at(1), at(3), true},
		{"straddles end", at(3), at(5), true},
		{"inside", at(2), at(3), true},
		{"contains", at(1), at(5), true},
		{"back-to-back before", at(0), at(2), false},
		{"back-to-back after", at(4), at(6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.bookings.CreateBooking(ctx, bookingInput(club, tableID, tt.start, tt.end))
			if tt.conflict {
				require.Error(t, err)
				conflict, ok := apperr.AsConflict(err)
				require.True(t, ok)
				assert.Equal(t, model.ConflictOverlap, conflict.ConflictType)
				require.NotNil(t, conflict.ExistingBooking)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestCreateBooking_OtherTableDoesNotConflict verifies overlap is scoped
// per table.
func TestCreateBooking_OtherTableDoesNotConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 2, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	_, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)

	_, err = env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[1].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)
}

// TestCreateBooking_CancelledSlotReusable verifies cancelled bookings
// release their slot.
func TestCreateBooking_CancelledSlotReusable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	result, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)

	_, err = env.bookings.CancelBooking(ctx, club.ID, result.Bookings[0].ID, "plans changed", "owner1")
	require.NoError(t, err)

	_, err = env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)
}

// TestCreateBooking_Validation covers rejected inputs.
func TestCreateBooking_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	// end before start
	_, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(-time.Hour)))
	assert.True(t, apperr.IsValidation(err))

	// zero-length slot
	_, err = env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start))
	assert.True(t, apperr.IsValidation(err))

	// missing player name
	in := bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour))
	in.PlayerName = ""
	_, err = env.bookings.CreateBooking(ctx, in)
	assert.True(t, apperr.IsValidation(err))

	// unknown table
	_, err = env.bookings.CreateBooking(ctx, bookingInput(club, "nosuchtable", start, start.Add(time.Hour)))
	assert.True(t, apperr.IsNotFound(err))

	// unknown club
	in = bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour))
	in.ClubID = "nosuchclub"
	_, err = env.bookings.CreateBooking(ctx, in)
	assert.True(t, apperr.IsNotFound(err))
}

// TestCreateBooking_InactiveTable verifies deactivated tables reject new
// bookings.
func TestCreateBooking_InactiveTable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	_, err := env.registry.DeactivateTable(ctx, club.ID, club.Tables[0].ID)
	require.NoError(t, err)

	_, err = env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
	require.Error(t, err)
	conflict, ok := apperr.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, model.ConflictTableUnavailable, conflict.ConflictType)
}

// TestCancelBooking_Idempotent verifies cancelling twice is a no-op, and
// that completed bookings cannot be cancelled.
func TestCancelBooking_Idempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	result, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)
	id := result.Bookings[0].ID

	first, err := env.bookings.CancelBooking(ctx, club.ID, id, "rain", "owner1")
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, first.Status)
	assert.Equal(t, "rain", first.CancellationReason)
	require.NotNil(t, first.CancelledAt)

	second, err := env.bookings.CancelBooking(ctx, club.ID, id, "other reason", "staff1")
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, second.Status)
	assert.Equal(t, "rain", second.CancellationReason, "repeat cancel must not rewrite the record")
	assert.Equal(t, first.CancelledAt.Unix(), second.CancelledAt.Unix())

	_, err = env.bookings.CancelBooking(ctx, club.ID, "missing", "", "")
	assert.True(t, apperr.IsNotFound(err))
}

// TestCancelBooking_TerminalStates verifies completed and no-show never
// reopen into cancelled.
func TestCancelBooking_TerminalStates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 2, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	result, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)
	completed := result.Bookings[0].ID
	_, err = env.bookings.CompleteBooking(ctx, club.ID, completed)
	require.NoError(t, err)

	_, err = env.bookings.CancelBooking(ctx, club.ID, completed, "", "")
	assert.True(t, apperr.IsValidation(err))

	result, err = env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[1].ID, start, start.Add(time.Hour)))
	require.NoError(t, err)
	noShow := result.Bookings[0].ID
	_, err = env.bookings.MarkNoShow(ctx, club.ID, noShow)
	require.NoError(t, err)

	_, err = env.bookings.CancelBooking(ctx, club.ID, noShow, "", "")
	assert.True(t, apperr.IsValidation(err))
}

// TestListBookings_SortedAscending verifies ascending order regardless of
// insertion order.
func TestListBookings_SortedAscending(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)

	for _, h := range []int{6, 0, 10, 2} {
		start := base.Add(time.Duration(h) * time.Hour)
		_, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
		require.NoError(t, err)
	}

	listed, err := env.bookings.ListBookings(ctx, club.ID, model.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 4)
	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i].StartTime.Before(listed[i-1].StartTime))
	}
}

// TestCreateBooking_RecurringWeekly verifies weekly expansion shares a
// series ID and honors the occurrence cap.
func TestCreateBooking_RecurringWeekly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	// A Sunday
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	in := bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour))
	in.IsRecurring = true
	in.RecurringPattern = &model.RecurringPattern{
		Type:           model.RecurWeekly,
		Interval:       1,
		MaxOccurrences: 4,
	}

	result, err := env.bookings.CreateBooking(ctx, in)
	require.NoError(t, err)
	require.Len(t, result.Bookings, 4)

	seriesID := result.Bookings[0].RecurringSeriesID
	require.NotEmpty(t, seriesID)
	for i, b := range result.Bookings {
		assert.Equal(t, seriesID, b.RecurringSeriesID)
		assert.True(t, b.IsRecurring)
		expected := start.AddDate(0, 0, 7*i)
		assert.Equal(t, expected, b.StartTime, "occurrence %d", i)
	}
}

// TestCreateBooking_RecurringSkipsConflicts verifies a blocked occurrence
// is skipped and reported while the rest are placed.
func TestCreateBooking_RecurringSkipsConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	// Block the second daily occurrence
	blocked := start.AddDate(0, 0, 1)
	_, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, blocked, blocked.Add(time.Hour)))
	require.NoError(t, err)

	in := bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour))
	in.IsRecurring = true
	in.RecurringPattern = &model.RecurringPattern{
		Type:           model.RecurDaily,
		Interval:       1,
		MaxOccurrences: 3,
	}

	result, err := env.bookings.CreateBooking(ctx, in)
	require.NoError(t, err)
	assert.Len(t, result.Bookings, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, model.ConflictOverlap, result.Skipped[0].ConflictType)
}

// TestCreateBooking_RecurringAllConflict verifies a fully-blocked series
// is a conflict, not a silent empty result.
func TestCreateBooking_RecurringAllConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	in := bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour))
	in.IsRecurring = true
	in.RecurringPattern = &model.RecurringPattern{
		Type:           model.RecurDaily,
		Interval:       1,
		MaxOccurrences: 2,
	}
	_, err := env.bookings.CreateBooking(ctx, in)
	require.NoError(t, err)

	_, err = env.bookings.CreateBooking(ctx, in)
	assert.True(t, apperr.IsConflict(err))
}

// TestUpdateBooking_RescheduleConflict verifies moving a booking into an
// occupied slot fails and leaves the booking untouched.
func TestUpdateBooking_RescheduleConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)

	first, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, base, base.Add(time.Hour)))
	require.NoError(t, err)
	blocked := base.Add(2 * time.Hour)
	_, err = env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, blocked, blocked.Add(time.Hour)))
	require.NoError(t, err)

	newStart := blocked.Add(30 * time.Minute)
	newEnd := newStart.Add(time.Hour)
	_, err = env.bookings.UpdateBooking(ctx, club.ID, first.Bookings[0].ID, BookingUpdate{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	assert.True(t, apperr.IsConflict(err))

	unchanged, err := env.bookings.GetBooking(ctx, club.ID, first.Bookings[0].ID)
	require.NoError(t, err)
	// Stored times come back through JSON, which normalizes the location,
	// so compare instants rather than struct values.
	assert.True(t, base.Equal(unchanged.StartTime))
}

// TestUpdateBooking_TableMustExistAndBeActive verifies a reschedule
// cannot land on a missing or deactivated table.
func TestUpdateBooking_TableMustExistAndBeActive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 2, 100)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)

	result, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, base, base.Add(time.Hour)))
	require.NoError(t, err)
	id := result.Bookings[0].ID

	missing := "no-such-table"
	_, err = env.bookings.UpdateBooking(ctx, club.ID, id, BookingUpdate{TableID: &missing})
	assert.True(t, apperr.IsNotFound(err))

	_, err = env.registry.DeactivateTable(ctx, club.ID, club.Tables[1].ID)
	require.NoError(t, err)
	inactive := club.Tables[1].ID
	_, err = env.bookings.UpdateBooking(ctx, club.ID, id, BookingUpdate{TableID: &inactive})
	require.Error(t, err)
	conflict, ok := apperr.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, model.ConflictTableUnavailable, conflict.ConflictType)

	// The booking stays on its original table.
	unchanged, err := env.bookings.GetBooking(ctx, club.ID, id)
	require.NoError(t, err)
	assert.Equal(t, club.Tables[0].ID, unchanged.TableID)
}

// TestUpdateBooking_MoveToFreeSlot verifies a clean reschedule and that
// re-saving the same slot does not conflict with itself.
func TestUpdateBooking_MoveToFreeSlot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)

	result, err := env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, base, base.Add(time.Hour)))
	require.NoError(t, err)
	id := result.Bookings[0].ID

	// Same slot re-save: no self-conflict
	_, err = env.bookings.UpdateBooking(ctx, club.ID, id, BookingUpdate{
		StartTime: &base,
	})
	require.NoError(t, err)

	newStart := base.Add(3 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	updated, err := env.bookings.UpdateBooking(ctx, club.ID, id, BookingUpdate{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.StartTime)
	assert.Equal(t, newEnd, updated.EndTime)
}

// TestCreateBooking_ConcurrentSameSlot races many creators for one slot
// and expects exactly one winner.
func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	club := env.newTestClub(t, 1, 100)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.Local)

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.bookings.CreateBooking(ctx, bookingInput(club, club.Tables[0].ID, start, start.Add(time.Hour)))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, apperr.IsConflict(err))
		}
	}
	assert.Equal(t, 1, winners)

	listed, err := env.bookings.ListBookings(ctx, club.ID, model.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
