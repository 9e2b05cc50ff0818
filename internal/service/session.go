package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/pkg/lock"
	"cueclub/internal/repository"
)

// SessionService meters live table play. A table is occupied exactly
// while it has an open session; occupancy is derived from the session
// list on every read, never stored on the table record.
type SessionService struct {
	clubRepo      *repository.ClubRepository
	sessionRepo   *repository.SessionRepository
	inventoryRepo *repository.InventoryRepository
	ledgerRepo    *repository.LedgerRepository
	tableLock     *lock.TableLock
	lockTimeout   time.Duration
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(
	clubRepo *repository.ClubRepository,
	sessionRepo *repository.SessionRepository,
	inventoryRepo *repository.InventoryRepository,
	ledgerRepo *repository.LedgerRepository,
	tableLock *lock.TableLock,
	lockTimeout time.Duration,
) *SessionService {
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	return &SessionService{
		clubRepo:      clubRepo,
		sessionRepo:   sessionRepo,
		inventoryRepo: inventoryRepo,
		ledgerRepo:    ledgerRepo,
		tableLock:     tableLock,
		lockTimeout:   lockTimeout,
	}
}

// StartSession opens a session on a table. Rejected with a ConflictError
// while the table already has an open session.
func (s *SessionService) StartSession(ctx context.Context, clubID, tableID, playerName string, startTime time.Time) (*model.Session, error) {
	if playerName == "" {
		return nil, apperr.Validation("playerName", "required")
	}
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	table := club.TableByID(tableID)
	if table == nil {
		return nil, apperr.NotFound("table", tableID)
	}
	if !table.IsActive {
		return nil, apperr.Conflict(model.ConflictTableUnavailable,
			fmt.Sprintf("table %d is not active", table.Number), nil)
	}
	if startTime.IsZero() {
		startTime = time.Now()
	}

	session := model.Session{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		TableID:     tableID,
		TableNumber: table.Number,
		PlayerName:  playerName,
		StartTime:   startTime,
		HourlyRate:  table.RatePerHour,
	}

	err = s.tableLock.WithLockContext(ctx, tableID, s.lockTimeout, func() error {
		return s.sessionRepo.Mutate(ctx, clubID, func(sessions *[]model.Session) error {
			// The open-session check runs inside the same atomic write
			// that appends, so two concurrent starts cannot both pass.
			for i := range *sessions {
				if (*sessions)[i].TableID == tableID && (*sessions)[i].IsOpen() {
					return apperr.Conflict(model.ConflictDoubleBooking,
						fmt.Sprintf("table %d already has an open session", table.Number), nil)
				}
			}
			*sessions = append(*sessions, session)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("club_id", clubID).
		Int("table", table.Number).
		Str("player", playerName).
		Msg("Session started")

	return &session, nil
}

// EndSession closes an open session at the given instant and computes the
// charge: every started hour bills in full, plus any food ordered during
// the session. Ending an already ended session is an error; the stored
// total never changes after close.
func (s *SessionService) EndSession(ctx context.Context, clubID, sessionID string, now time.Time) (*model.Session, error) {
	if now.IsZero() {
		now = time.Now()
	}
	session, err := s.sessionRepo.MutateOne(ctx, clubID, sessionID, func(sess *model.Session) error {
		if !sess.IsOpen() {
			return apperr.Validation("session", "already ended")
		}
		end := now
		sess.EndTime = &end
		sess.TotalAmount = sess.TableCharge(now) + sess.FoodTotal()
		return nil
	})
	if err != nil {
		return nil, err
	}

	tx := model.Transaction{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		Amount:      session.TotalAmount,
		Method:      model.PayMethodCash,
		Type:        model.TxTypeSession,
		Timestamp:   now,
		Description: fmt.Sprintf("table %d session, total %d", session.TableNumber, session.TotalAmount),
	}
	if err := s.ledgerRepo.AppendTransaction(ctx, clubID, tx); err != nil {
		// The session is already closed; surface the ledger failure.
		return session, err
	}

	log.Info().
		Str("club_id", clubID).
		Str("session_id", sessionID).
		Int64("total", session.TotalAmount).
		Msg("Session ended")

	return session, nil
}

// OrderFood adds a menu item to an open session. Stock is decremented
// when a matching inventory item is tracked.
func (s *SessionService) OrderFood(ctx context.Context, clubID, sessionID, menuItemID string, quantity int) (*model.Session, error) {
	if quantity < 1 {
		return nil, apperr.Validation("quantity", "must be at least 1")
	}
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	item := club.MenuItemByID(menuItemID)
	if item == nil {
		return nil, apperr.NotFound("menu item", menuItemID)
	}
	if !item.IsAvailable {
		return nil, apperr.Validation("menuItem", item.Name+" is not available")
	}

	session, err := s.sessionRepo.MutateOne(ctx, clubID, sessionID, func(sess *model.Session) error {
		if !sess.IsOpen() {
			return apperr.Validation("session", "already ended")
		}
		sess.FoodOrders = append(sess.FoodOrders, model.FoodOrder{
			ID:         uuid.NewString(),
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   quantity,
			Amount:     item.Price * int64(quantity),
			OrderedAt:  time.Now(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.inventoryRepo.MutateByName(ctx, clubID, item.Name, func(inv *model.InventoryItem) error {
		inv.CurrentStock -= quantity
		if inv.CurrentStock < 0 {
			inv.CurrentStock = 0
		}
		inv.LastUpdated = time.Now()
		return nil
	}); err != nil {
		log.Warn().Err(err).Str("item", item.Name).Msg("Stock decrement failed")
	}

	return session, nil
}

// ListSessions returns all sessions of a club.
func (s *SessionService) ListSessions(ctx context.Context, clubID string) ([]model.Session, error) {
	return s.sessionRepo.List(ctx, clubID)
}

// HasOpenSession reports whether the table currently has an open session.
func (s *SessionService) HasOpenSession(ctx context.Context, clubID, tableID string) (bool, error) {
	open, err := s.sessionRepo.OpenForTable(ctx, clubID, tableID)
	if err != nil {
		return false, err
	}
	return open != nil, nil
}

// TableStatus is the derived occupancy of one table.
type TableStatus struct {
	Table    model.Table    `json:"table"`
	Occupied bool           `json:"occupied"`
	Session  *model.Session `json:"session,omitempty"`
}

// TableStatuses returns the derived occupancy of every table in the club.
func (s *SessionService) TableStatuses(ctx context.Context, clubID string) ([]TableStatus, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.List(ctx, clubID)
	if err != nil {
		return nil, err
	}

	openByTable := make(map[string]*model.Session)
	for i := range sessions {
		if sessions[i].IsOpen() {
			openByTable[sessions[i].TableID] = &sessions[i]
		}
	}

	statuses := make([]TableStatus, 0, len(club.Tables))
	for _, tbl := range club.Tables {
		st := TableStatus{Table: tbl}
		if open, ok := openByTable[tbl.ID]; ok {
			st.Occupied = true
			st.Session = open
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
