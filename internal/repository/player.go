package repository

import (
	"context"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

// PlayerRepository handles player and wallet persistence, stored per-club
// under "players:<clubID>".
type PlayerRepository struct {
	store store.Store
}

// NewPlayerRepository creates a new PlayerRepository instance.
func NewPlayerRepository(s store.Store) *PlayerRepository {
	return &PlayerRepository{store: s}
}

// List returns all players registered with a club.
func (r *PlayerRepository) List(ctx context.Context, clubID string) ([]model.Player, error) {
	key := store.PlayersKey(clubID)
	var players []model.Player
	if err := store.GetJSON(ctx, r.store, key, &players); err != nil {
		return nil, apperr.Persistence("get", key, err)
	}
	return players, nil
}

// GetByID returns one player of a club.
func (r *PlayerRepository) GetByID(ctx context.Context, clubID, playerID string) (*model.Player, error) {
	players, err := r.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].ID == playerID {
			return &players[i], nil
		}
	}
	return nil, apperr.NotFound("player", playerID)
}

// Insert appends a new player.
func (r *PlayerRepository) Insert(ctx context.Context, clubID string, player model.Player) error {
	key := store.PlayersKey(clubID)
	err := store.UpdateJSON(ctx, r.store, key, func(players *[]model.Player) error {
		*players = append(*players, player)
		return nil
	})
	if err != nil {
		return apperr.Persistence("update", key, err)
	}
	return nil
}

// MutateOne atomically applies fn to a single player. Wallet balance
// changes go through here so concurrent spends serialize on the store.
func (r *PlayerRepository) MutateOne(ctx context.Context, clubID, playerID string, fn func(*model.Player) error) (*model.Player, error) {
	key := store.PlayersKey(clubID)
	var updated model.Player
	err := store.UpdateJSON(ctx, r.store, key, func(players *[]model.Player) error {
		for i := range *players {
			if (*players)[i].ID == playerID {
				if err := fn(&(*players)[i]); err != nil {
					return err
				}
				updated = (*players)[i]
				return nil
			}
		}
		return apperr.NotFound("player", playerID)
	})
	if err != nil {
		if apperr.IsNotFound(err) || apperr.IsValidation(err) || apperr.IsConflict(err) {
			return nil, err
		}
		return nil, apperr.Persistence("update", key, err)
	}
	return &updated, nil
}
