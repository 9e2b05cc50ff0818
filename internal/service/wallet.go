package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/repository"
)

// Wallet errors.
var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidAmount       = errors.New("invalid amount: must be positive")
)

// WalletService handles players and their prepaid wallets. Balance
// changes go through the store's atomic read-modify-write, so concurrent
// spends cannot both pass the balance check.
type WalletService struct {
	playerRepo  *repository.PlayerRepository
	sessionRepo *repository.SessionRepository
	ledgerRepo  *repository.LedgerRepository
}

// NewWalletService creates a new WalletService instance.
func NewWalletService(
	playerRepo *repository.PlayerRepository,
	sessionRepo *repository.SessionRepository,
	ledgerRepo *repository.LedgerRepository,
) *WalletService {
	return &WalletService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// AddPlayerInput is the payload for AddPlayer.
type AddPlayerInput struct {
	Name           string `validate:"required,min=1,max=100"`
	Phone          string `validate:"required"`
	InitialBalance int64  `validate:"min=0"`
}

// AddPlayer registers a player with a club.
func (s *WalletService) AddPlayer(ctx context.Context, clubID string, in AddPlayerInput) (*model.Player, error) {
	if err := validate.Struct(in); err != nil {
		return nil, translateValidation(err)
	}
	player := model.Player{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Phone:         in.Phone,
		WalletBalance: in.InitialBalance,
		CreatedAt:     time.Now(),
	}
	if err := s.playerRepo.Insert(ctx, clubID, player); err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	return &player, nil
}

// GetPlayer returns one player of a club.
func (s *WalletService) GetPlayer(ctx context.Context, clubID, playerID string) (*model.Player, error) {
	return s.playerRepo.GetByID(ctx, clubID, playerID)
}

// ListPlayers returns all players of a club.
func (s *WalletService) ListPlayers(ctx context.Context, clubID string) ([]model.Player, error) {
	return s.playerRepo.List(ctx, clubID)
}

// TopUp adds funds to a player's wallet and records the transaction.
func (s *WalletService) TopUp(ctx context.Context, clubID, playerID string, amount int64, method string) (*model.Player, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if method == "" {
		method = model.PayMethodCash
	}
	player, err := s.playerRepo.MutateOne(ctx, clubID, playerID, func(p *model.Player) error {
		p.WalletBalance += amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	tx := model.Transaction{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		Amount:      amount,
		Method:      method,
		Type:        model.TxTypeTopUp,
		Timestamp:   time.Now(),
		Description: fmt.Sprintf("wallet top-up for %s", player.Name),
	}
	if err := s.ledgerRepo.AppendTransaction(ctx, clubID, tx); err != nil {
		return player, err
	}
	return player, nil
}

// Spend debits a player's wallet. Rejected when the balance does not
// cover the amount.
func (s *WalletService) Spend(ctx context.Context, clubID, playerID string, amount int64, description string) (*model.Player, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	player, err := s.playerRepo.MutateOne(ctx, clubID, playerID, func(p *model.Player) error {
		if p.WalletBalance < amount {
			return ErrInsufficientBalance
		}
		p.WalletBalance -= amount
		p.TotalSpent += amount
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, err
	}

	tx := model.Transaction{
		ID:          uuid.NewString(),
		ClubID:      clubID,
		Amount:      amount,
		Method:      model.PayMethodWallet,
		Type:        model.TxTypeWallet,
		Timestamp:   time.Now(),
		Description: description,
	}
	if err := s.ledgerRepo.AppendTransaction(ctx, clubID, tx); err != nil {
		return player, err
	}
	return player, nil
}

// PaySession settles an ended session. Settlement is claimed by marking
// the session paid in one atomic step; the wallet method then debits the
// player's wallet, releasing the claim if the debit fails. Cash and UPI
// only mark. The player's session counter advances on settlement.
func (s *WalletService) PaySession(ctx context.Context, clubID, sessionID, playerID, method string) (*model.Session, error) {
	if method == model.PayMethodWallet && playerID == "" {
		return nil, apperr.Validation("playerId", "required for wallet payment")
	}

	// The paid check and the flag flip share one atomic read-modify-write,
	// so concurrent settlements cannot both claim the session.
	alreadyPaid := false
	paid, err := s.sessionRepo.MutateOne(ctx, clubID, sessionID, func(sess *model.Session) error {
		if sess.IsOpen() {
			return apperr.Validation("session", "cannot settle an open session")
		}
		if sess.Paid {
			alreadyPaid = true
			return nil
		}
		sess.Paid = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if alreadyPaid {
		return paid, nil // idempotent
	}

	if method == model.PayMethodWallet {
		if _, err := s.Spend(ctx, clubID, playerID, paid.TotalAmount,
			fmt.Sprintf("session on table %d", paid.TableNumber)); err != nil {
			// Release the claim so the session can be settled again.
			if _, uerr := s.sessionRepo.MutateOne(ctx, clubID, sessionID, func(sess *model.Session) error {
				sess.Paid = false
				return nil
			}); uerr != nil {
				log.Error().Err(uerr).Str("session_id", sessionID).Msg("Failed to release settlement claim")
			}
			return nil, err
		}
	}

	if playerID != "" {
		if _, err := s.playerRepo.MutateOne(ctx, clubID, playerID, func(p *model.Player) error {
			p.SessionsCount++
			return nil
		}); err != nil && !apperr.IsNotFound(err) {
			log.Warn().Err(err).Str("player_id", playerID).Msg("Session counter update failed")
		}
	}

	return paid, nil
}
