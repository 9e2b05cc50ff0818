package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cueclub/internal/apperr"
	"cueclub/internal/model"
	"cueclub/internal/store"
)

func TestClubRepository_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewClubRepository(store.NewMemoryStore())

	require.NoError(t, repo.Insert(ctx, model.Club{ID: "c1", Name: "Cue Corner", OwnerID: "o1"}))
	require.NoError(t, repo.Insert(ctx, model.Club{ID: "c2", Name: "Break Room", OwnerID: "o2"}))

	club, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Cue Corner", club.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClubRepository_Mutate(t *testing.T) {
	ctx := context.Background()
	repo := NewClubRepository(store.NewMemoryStore())

	require.NoError(t, repo.Insert(ctx, model.Club{ID: "c1", Name: "Cue Corner"}))

	updated, err := repo.Mutate(ctx, "c1", func(c *model.Club) error {
		c.Name = "Cue Palace"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Cue Palace", updated.Name)

	stored, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Cue Palace", stored.Name)

	_, err = repo.Mutate(ctx, "missing", func(c *model.Club) error { return nil })
	assert.True(t, apperr.IsNotFound(err))
}

func TestClubRepository_ListForOwnerAndStaff(t *testing.T) {
	ctx := context.Background()
	repo := NewClubRepository(store.NewMemoryStore())

	require.NoError(t, repo.Insert(ctx, model.Club{
		ID:      "c1",
		OwnerID: "o1",
		Staff:   []model.StaffMember{{ID: "s1", IsActive: true}},
	}))
	require.NoError(t, repo.Insert(ctx, model.Club{
		ID:      "c2",
		OwnerID: "o1",
		Staff:   []model.StaffMember{{ID: "s1", IsActive: false}},
	}))
	require.NoError(t, repo.Insert(ctx, model.Club{ID: "c3", OwnerID: "o2"}))

	owned, err := repo.ListForOwner(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	// Inactive staff assignments do not grant access
	assigned, err := repo.ListForStaff(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "c1", assigned[0].ID)
}
