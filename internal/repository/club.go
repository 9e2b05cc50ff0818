// Package repository provides typed data access over the document store.
// Each repository reads and writes whole JSON documents; mutations go
// through the store's atomic read-modify-write.
package repository

import (
	"context"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

// ClubRepository handles club registry persistence. All clubs live in one
// "clubs" document.
type ClubRepository struct {
	store store.Store
}

// NewClubRepository creates a new ClubRepository instance.
func NewClubRepository(s store.Store) *ClubRepository {
	return &ClubRepository{store: s}
}

// All returns every registered club.
func (r *ClubRepository) All(ctx context.Context) ([]model.Club, error) {
	var clubs []model.Club
	if err := store.GetJSON(ctx, r.store, store.ClubsKey(), &clubs); err != nil {
		return nil, apperr.Persistence("get", store.ClubsKey(), err)
	}
	return clubs, nil
}

// GetByID returns the club with the given ID.
// Returns a NotFoundError if no such club exists.
func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (*model.Club, error) {
	clubs, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clubs {
		if clubs[i].ID == clubID {
			return &clubs[i], nil
		}
	}
	return nil, apperr.NotFound("club", clubID)
}

// Insert appends a new club to the registry.
func (r *ClubRepository) Insert(ctx context.Context, club model.Club) error {
	err := store.UpdateJSON(ctx, r.store, store.ClubsKey(), func(clubs *[]model.Club) error {
		*clubs = append(*clubs, club)
		return nil
	})
	if err != nil {
		return apperr.Persistence("update", store.ClubsKey(), err)
	}
	return nil
}

// Mutate atomically applies fn to the club with the given ID and persists
// the result. fn sees the current stored club, not a stale copy.
func (r *ClubRepository) Mutate(ctx context.Context, clubID string, fn func(*model.Club) error) (*model.Club, error) {
	var updated model.Club
	err := store.UpdateJSON(ctx, r.store, store.ClubsKey(), func(clubs *[]model.Club) error {
		for i := range *clubs {
			if (*clubs)[i].ID == clubID {
				if err := fn(&(*clubs)[i]); err != nil {
					return err
				}
				updated = (*clubs)[i]
				return nil
			}
		}
		return apperr.NotFound("club", clubID)
	})
	if err != nil {
		if apperr.IsNotFound(err) || apperr.IsValidation(err) || apperr.IsConflict(err) {
			return nil, err
		}
		return nil, apperr.Persistence("update", store.ClubsKey(), err)
	}
	return &updated, nil
}

// ListForOwner returns every club owned by the given owner.
func (r *ClubRepository) ListForOwner(ctx context.Context, ownerID string) ([]model.Club, error) {
	clubs, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var owned []model.Club
	for _, c := range clubs {
		if c.OwnerID == ownerID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

// ListForStaff returns every club the given staff member is assigned to,
// resolved through each club's staff list.
func (r *ClubRepository) ListForStaff(ctx context.Context, staffID string) ([]model.Club, error) {
	clubs, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var assigned []model.Club
	for _, c := range clubs {
		if m := c.StaffByID(staffID); m != nil && m.IsActive {
			assigned = append(assigned, c)
		}
	}
	return assigned, nil
}
