package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cueclub/internal/model"
	"cueclub/internal/pkg/lock"
	"cueclub/internal/repository"
	"cueclub/internal/store"
)

// testEnv wires every service over a fresh in-memory store.
type testEnv struct {
	registry  *RegistryService
	bookings  *BookingService
	sessions  *SessionService
	wallet    *WalletService
	ledger    *LedgerService
	stats     *StatsService
	auth      *AuthService
	inventory *InventoryService

	clubRepo    *repository.ClubRepository
	bookingRepo *repository.BookingRepository
	sessionRepo *repository.SessionRepository
	ledgerRepo  *repository.LedgerRepository
}

func newTestEnv() *testEnv {
	s := store.NewMemoryStore()

	userRepo := repository.NewUserRepository(s)
	clubRepo := repository.NewClubRepository(s)
	bookingRepo := repository.NewBookingRepository(s)
	sessionRepo := repository.NewSessionRepository(s)
	playerRepo := repository.NewPlayerRepository(s)
	ledgerRepo := repository.NewLedgerRepository(s)
	inventoryRepo := repository.NewInventoryRepository(s)

	tableLock := lock.NewTableLock()

	return &testEnv{
		registry:    NewRegistryService(clubRepo, sessionRepo),
		bookings:    NewBookingService(clubRepo, bookingRepo, tableLock, 52, 5*time.Second),
		sessions:    NewSessionService(clubRepo, sessionRepo, inventoryRepo, ledgerRepo, tableLock, 5*time.Second),
		wallet:      NewWalletService(playerRepo, sessionRepo, ledgerRepo),
		ledger:      NewLedgerService(ledgerRepo),
		stats:       NewStatsService(clubRepo, bookingRepo, sessionRepo, playerRepo),
		auth:        NewAuthService(userRepo, clubRepo),
		inventory:   NewInventoryService(inventoryRepo),
		clubRepo:    clubRepo,
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// newTestClub creates a club with the given table count and hourly rate.
func (e *testEnv) newTestClub(t *testing.T, tables int, rate int64) *model.Club {
	t.Helper()
	club, err := e.registry.CreateClub(context.Background(), CreateClubInput{
		Name:        "Cue Corner",
		Address:     "12 MG Road",
		Phone:       "9876543210",
		OwnerID:     "owner1",
		TableCount:  tables,
		RatePerHour: rate,
	})
	require.NoError(t, err)
	return club
}
