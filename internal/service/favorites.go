package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tubarao/storefront/internal/logging"
)

// ErrSignInRequired is the fail-fast signal a toggle returns when no user is
// signed in. No repository call has been made when this is returned.
var ErrSignInRequired = errors.New("sign in required")

type FavoritesRepo interface {
	ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uint, error)
	ToggleFavorite(ctx context.Context, userID uuid.UUID, productID uint) (bool, error)
}

// FavoritesService mirrors each signed-in user's favorite set from the
// repository. Local state only changes after the repository call succeeds; a
// failed call leaves the set exactly as it was.
type FavoritesService struct {
	Repo FavoritesRepo

	mu   sync.Mutex
	sets map[uuid.UUID]map[uint]struct{}

	// toggles on the same (user, product) are serialized so two rapid
	// gestures cannot interleave their check and write.
	locks sync.Map
}

// Load replaces the user's in-memory set with the repository's view.
func (s *FavoritesService) Load(ctx context.Context, userID uuid.UUID) ([]uint, error) {
	if userID == uuid.Nil {
		return nil, ErrSignInRequired
	}

	ids, err := s.Repo.ListProductIDs(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("favorites load failed", "user_id", userID, "error", err)
		return nil, err
	}

	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	if s.sets == nil {
		s.sets = make(map[uuid.UUID]map[uint]struct{})
	}
	s.sets[userID] = set
	s.mu.Unlock()

	return ids, nil
}

// Clear drops the user's set without a fetch, on transition to "no user".
func (s *FavoritesService) Clear(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.sets, userID)
	s.mu.Unlock()
}

// Toggle flips membership of productID in the user's favorites. Without a
// session it fails fast with ErrSignInRequired and touches nothing.
func (s *FavoritesService) Toggle(ctx context.Context, userID uuid.UUID, productID uint) (bool, error) {
	if userID == uuid.Nil {
		return false, ErrSignInRequired
	}

	unlock := s.lock(userID, productID)
	defer unlock()

	favorited, err := s.Repo.ToggleFavorite(ctx, userID, productID)
	if err != nil {
		logging.FromContext(ctx).Error("favorite toggle failed", "user_id", userID, "product_id", productID, "error", err)
		return false, err
	}

	s.mu.Lock()
	if set, ok := s.sets[userID]; ok {
		if favorited {
			set[productID] = struct{}{}
		} else {
			delete(set, productID)
		}
	}
	s.mu.Unlock()

	return favorited, nil
}

// IsFavorite answers from the in-memory set; false for users never loaded.
func (s *FavoritesService) IsFavorite(userID uuid.UUID, productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[userID]
	if !ok {
		return false
	}
	_, member := set[productID]
	return member
}

func (s *FavoritesService) lock(userID uuid.UUID, productID uint) func() {
	key := fmt.Sprintf("%s/%d", userID, productID)
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
