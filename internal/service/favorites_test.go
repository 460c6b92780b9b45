package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFavoritesRepo counts calls so tests can prove the fail-fast path never
// reaches the repository.
type fakeFavoritesRepo struct {
	members    map[uint]bool
	listCalls  int
	toggleCall int
	toggleErr  error
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{members: make(map[uint]bool)}
}

func (r *fakeFavoritesRepo) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uint, error) {
	r.listCalls++
	var ids []uint
	for id, ok := range r.members {
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeFavoritesRepo) ToggleFavorite(ctx context.Context, userID uuid.UUID, productID uint) (bool, error) {
	r.toggleCall++
	if r.toggleErr != nil {
		return false, r.toggleErr
	}
	r.members[productID] = !r.members[productID]
	return r.members[productID], nil
}

func TestToggle_WithoutSessionFailsFast(t *testing.T) {
	t.Parallel()

	repo := newFakeFavoritesRepo()
	svc := &FavoritesService{Repo: repo}

	_, err := svc.Toggle(context.Background(), uuid.Nil, 7)
	require.ErrorIs(t, err, ErrSignInRequired)
	assert.Zero(t, repo.toggleCall, "no repository call may be made without a session")
}

func TestToggle_IsAPureFlip(t *testing.T) {
	t.Parallel()

	repo := newFakeFavoritesRepo()
	svc := &FavoritesService{Repo: repo}
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Load(ctx, userID)
	require.NoError(t, err)
	require.False(t, svc.IsFavorite(userID, 7))

	favorited, err := svc.Toggle(ctx, userID, 7)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.True(t, svc.IsFavorite(userID, 7))

	favorited, err = svc.Toggle(ctx, userID, 7)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.False(t, svc.IsFavorite(userID, 7))
}

func TestToggle_RepoFailureLeavesSetUnchanged(t *testing.T) {
	t.Parallel()

	repo := newFakeFavoritesRepo()
	svc := &FavoritesService{Repo: repo}
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Load(ctx, userID)
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, userID, 7)
	require.NoError(t, err)
	require.True(t, svc.IsFavorite(userID, 7))

	repo.toggleErr = errors.New("gateway down")
	_, err = svc.Toggle(ctx, userID, 7)
	require.Error(t, err)
	assert.True(t, svc.IsFavorite(userID, 7), "failed toggle must not mutate the local set")
}

func TestLoad_ReplacesSet(t *testing.T) {
	t.Parallel()

	repo := newFakeFavoritesRepo()
	repo.members[1] = true
	repo.members[2] = true

	svc := &FavoritesService{Repo: repo}
	userID := uuid.New()

	ids, err := svc.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.True(t, svc.IsFavorite(userID, 1))
	assert.True(t, svc.IsFavorite(userID, 2))
	assert.False(t, svc.IsFavorite(userID, 3))
}

func TestLoad_WithoutSessionFailsFast(t *testing.T) {
	t.Parallel()

	repo := newFakeFavoritesRepo()
	svc := &FavoritesService{Repo: repo}

	_, err := svc.Load(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, ErrSignInRequired)
	assert.Zero(t, repo.listCalls)
}

func TestClear_DropsSetWithoutFetch(t *testing.T) {
	t.Parallel()

	repo := newFakeFavoritesRepo()
	repo.members[1] = true
	svc := &FavoritesService{Repo: repo}
	userID := uuid.New()

	_, err := svc.Load(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, svc.IsFavorite(userID, 1))

	listCallsBefore := repo.listCalls
	svc.Clear(userID)

	assert.False(t, svc.IsFavorite(userID, 1))
	assert.Equal(t, listCallsBefore, repo.listCalls)
}
