package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cueclub/internal/model"
)

// TestClubDayScenario walks one club through a short operating day:
// register, book, play a metered session, settle, and read the numbers
// back.
func TestClubDayScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	club := env.newTestClub(t, 2, 100)
	require.Len(t, club.Tables, 2)

	now := time.Now()
	evening := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, time.Local)

	// An advance booking on table 2 for the evening
	booked, err := env.bookings.CreateBooking(ctx, CreateBookingInput{
		ClubID:     club.ID,
		TableID:    club.Tables[1].ID,
		PlayerName: "Meera",
		StartTime:  evening,
		EndTime:    evening.Add(time.Hour),
		CreatedBy:  "owner1",
	})
	require.NoError(t, err)
	require.Len(t, booked.Bookings, 1)

	// A walk-in plays 90 minutes on table 1
	start := time.Date(now.Year(), now.Month(), now.Day(), 14, 0, 0, 0, time.Local)
	session, err := env.sessions.StartSession(ctx, club.ID, club.Tables[0].ID, "Ravi", start)
	require.NoError(t, err)

	mid, err := env.stats.ClubStats(ctx, club.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 1, mid.ActiveTables)

	ended, err := env.sessions.EndSession(ctx, club.ID, session.ID, start.Add(90*time.Minute))
	require.NoError(t, err)
	// 90 minutes bills 2 full hours at 100
	assert.Equal(t, int64(200), ended.TotalAmount)

	_, err = env.wallet.PaySession(ctx, club.ID, session.ID, "", model.PayMethodCash)
	require.NoError(t, err)

	// The dashboard reflects the settled day
	stats, err := env.stats.ClubStats(ctx, club.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ActiveTables)
	assert.Equal(t, int64(200), stats.MonthlyRevenue)
	assert.Equal(t, int64(0), stats.OutstandingPayments)
	assert.Equal(t, 1, stats.TotalBookings)

	// The ledger saw the session close
	summary, err := env.ledger.DailySummary(ctx, club.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(200), summary.Revenue)

	// The evening slot is still protected
	_, err = env.bookings.CreateBooking(ctx, CreateBookingInput{
		ClubID:     club.ID,
		TableID:    club.Tables[1].ID,
		PlayerName: "Arjun",
		StartTime:  evening.Add(30 * time.Minute),
		EndTime:    evening.Add(90 * time.Minute),
		CreatedBy:  "owner1",
	})
	require.Error(t, err)
}
