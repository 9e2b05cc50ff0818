package repository

import (
	"context"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

// UserRepository handles registered-user persistence. All users live in
// one "users" document.
type UserRepository struct {
	store store.Store
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// All returns every registered user.
func (r *UserRepository) All(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := store.GetJSON(ctx, r.store, store.UsersKey(), &users); err != nil {
		return nil, apperr.Persistence("get", store.UsersKey(), err)
	}
	return users, nil
}

// GetByID returns the user with the given ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, apperr.NotFound("user", userID)
}

// Insert appends a new user.
func (r *UserRepository) Insert(ctx context.Context, user model.User) error {
	err := store.UpdateJSON(ctx, r.store, store.UsersKey(), func(users *[]model.User) error {
		*users = append(*users, user)
		return nil
	})
	if err != nil {
		return apperr.Persistence("update", store.UsersKey(), err)
	}
	return nil
}

// MutateOne atomically applies fn to a single user.
func (r *UserRepository) MutateOne(ctx context.Context, userID string, fn func(*model.User) error) (*model.User, error) {
	var updated model.User
	err := store.UpdateJSON(ctx, r.store, store.UsersKey(), func(users *[]model.User) error {
		for i := range *users {
			if (*users)[i].ID == userID {
				if err := fn(&(*users)[i]); err != nil {
					return err
				}
				updated = (*users)[i]
				return nil
			}
		}
		return apperr.NotFound("user", userID)
	})
	if err != nil {
		if apperr.IsNotFound(err) || apperr.IsValidation(err) {
			return nil, err
		}
		return nil, apperr.Persistence("update", store.UsersKey(), err)
	}
	return &updated, nil
}
