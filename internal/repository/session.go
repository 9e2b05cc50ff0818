package repository

import (
	"context"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

// SessionRepository handles table-usage session persistence, stored
// per-club under "sessions:<clubID>".
type SessionRepository struct {
	store store.Store
}

// NewSessionRepository creates a new SessionRepository instance.
func NewSessionRepository(s store.Store) *SessionRepository {
	return &SessionRepository{store: s}
}

// List returns all sessions for a club, open and closed.
func (r *SessionRepository) List(ctx context.Context, clubID string) ([]model.Session, error) {
	key := store.SessionsKey(clubID)
	var sessions []model.Session
	if err := store.GetJSON(ctx, r.store, key, &sessions); err != nil {
		return nil, apperr.Persistence("get", key, err)
	}
	return sessions, nil
}

// GetByID returns one session of a club.
func (r *SessionRepository) GetByID(ctx context.Context, clubID, sessionID string) (*model.Session, error) {
	sessions, err := r.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == sessionID {
			return &sessions[i], nil
		}
	}
	return nil, apperr.NotFound("session", sessionID)
}

// OpenForTable returns the open session on a table, if any. Occupancy is
// always computed from this query; there is no stored occupancy flag to
// drift out of sync.
func (r *SessionRepository) OpenForTable(ctx context.Context, clubID, tableID string) (*model.Session, error) {
	sessions, err := r.List(ctx, clubID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].TableID == tableID && sessions[i].IsOpen() {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// Mutate atomically applies fn to the club's full session list.
func (r *SessionRepository) Mutate(ctx context.Context, clubID string, fn func(*[]model.Session) error) error {
	key := store.SessionsKey(clubID)
	err := store.UpdateJSON(ctx, r.store, key, fn)
	if err != nil {
		if apperr.IsNotFound(err) || apperr.IsValidation(err) || apperr.IsConflict(err) {
			return err
		}
		return apperr.Persistence("update", key, err)
	}
	return nil
}

// MutateOne atomically applies fn to a single session and returns the
// updated record.
func (r *SessionRepository) MutateOne(ctx context.Context, clubID, sessionID string, fn func(*model.Session) error) (*model.Session, error) {
	var updated model.Session
	err := r.Mutate(ctx, clubID, func(sessions *[]model.Session) error {
		for i := range *sessions {
			if (*sessions)[i].ID == sessionID {
				if err := fn(&(*sessions)[i]); err != nil {
					return err
				}
				updated = (*sessions)[i]
				return nil
			}
		}
		return apperr.NotFound("session", sessionID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
