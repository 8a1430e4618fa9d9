package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/plateshare/feedsync/domain"
)

// Status is the feed load-cycle state: Idle -> Loading -> Loaded | Failed.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusLoading:
		return "LOADING"
	case StatusLoaded:
		return "LOADED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is an immutable view of the synchronizer state, safe to hand
// to a presentation layer.
type Snapshot struct {
	Status     Status
	Recipes    []domain.Recipe
	LikedIDs   map[int64]bool
	PendingIDs []int64
	ErrMessage string
}

// Service keeps the in-memory feed projection consistent with the
// remote store under concurrent like/unlike actions. One Service per
// user session.
type Service struct {
	recipeRepo domain.RecipeRepository
	userID     uuid.UUID
	inflight   *inflightRegistry

	mu      sync.Mutex
	status  Status
	recipes []domain.Recipe
	liked   map[int64]struct{}
	lastErr error

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Snapshot)
}

// NewService will create a new feed synchronizer for the given user session.
func NewService(r domain.RecipeRepository, userID uuid.UUID) *Service {
	return &Service{
		recipeRepo: r,
		userID:     userID,
		inflight:   newInflightRegistry(),
		status:     StatusIdle,
		liked:      make(map[int64]struct{}),
		subs:       make(map[int]func(Snapshot)),
	}
}

// Refresh reloads the feed projection and the liked-set. A feed fetch
// failure empties the projection; a liked-set fetch failure keeps the
// already-loaded feed and only surfaces the error.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.lastErr = nil
	s.mu.Unlock()
	s.notify()

	recipes, err := s.recipeRepo.Fetch(ctx)
	if err != nil {
		logrus.Errorf("failed to fetch feed: %v", err)
		s.mu.Lock()
		s.recipes = nil
		s.lastErr = err
		s.status = StatusFailed
		s.mu.Unlock()
		s.notify()
		return err
	}

	ids, idsErr := s.recipeRepo.FetchLikedIDs(ctx, s.userID)

	s.mu.Lock()
	s.recipes = recipes
	if idsErr != nil {
		// Non-blocking: the feed stays, the liked-set keeps its last
		// known value.
		logrus.Warnf("failed to fetch liked ids: %v", idsErr)
		s.lastErr = idsErr
		s.status = StatusFailed
	} else {
		s.liked = make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			s.liked[id] = struct{}{}
		}
		s.status = StatusLoaded
	}
	s.mu.Unlock()
	s.notify()
	return idsErr
}

// ToggleLike flips the like state of the recipe for the session user.
// A second call while a mutation for the same recipe is outstanding is
// a no-op. Local state is only updated once the store has confirmed.
func (s *Service) ToggleLike(ctx context.Context, recipeID int64) error {
	if !s.inflight.TryBegin(recipeID) {
		return nil
	}
	s.notify()
	defer func() {
		s.inflight.End(recipeID)
		s.notify()
	}()

	like := domain.Like{UserID: s.userID, RecipeID: recipeID}

	if s.IsLiked(recipeID) {
		if err := s.recipeRepo.RemoveLikeRecord(ctx, like); err != nil {
			mErr := &domain.MutationError{Op: "unlike", RecipeID: recipeID, Err: err}
			logrus.Errorf("failed to remove like record: %v", mErr)
			s.setErr(mErr)
			return mErr
		}
		s.applyToggle(recipeID, false)
		return nil
	}

	if err := s.recipeRepo.AddLikeRecord(ctx, like); err != nil {
		mErr := &domain.MutationError{Op: "like", RecipeID: recipeID, Err: err}
		logrus.Errorf("failed to add like record: %v", mErr)
		s.setErr(mErr)
		return mErr
	}
	s.applyToggle(recipeID, true)
	return nil
}

// IsLiked reports whether the session user has liked the recipe.
func (s *Service) IsLiked(recipeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[recipeID]
	return ok
}

// Pending reports whether a like mutation for the recipe is in flight.
func (s *Service) Pending(recipeID int64) bool {
	return s.inflight.Pending(recipeID)
}

// Snapshot returns an immutable copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Status:   s.status,
		Recipes:  make([]domain.Recipe, len(s.recipes)),
		LikedIDs: make(map[int64]bool, len(s.liked)),
	}
	copy(snap.Recipes, s.recipes)
	for id := range s.liked {
		snap.LikedIDs[id] = true
	}
	if s.lastErr != nil {
		snap.ErrMessage = s.lastErr.Error()
	}
	s.mu.Unlock()

	snap.PendingIDs = s.inflight.snapshot()
	return snap
}

// Subscribe registers fn to run after every state transition and
// returns the matching unsubscribe func.
func (s *Service) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// applyToggle commits a confirmed mutation: liked-set membership plus a
// count bump on the projected recipe.
func (s *Service) applyToggle(recipeID int64, nowLiked bool) {
	s.mu.Lock()
	if nowLiked {
		s.liked[recipeID] = struct{}{}
		s.bumpCount(recipeID, 1)
	} else {
		delete(s.liked, recipeID)
		s.bumpCount(recipeID, -1)
	}
	s.mu.Unlock()
	s.notify()
}

// bumpCount replaces the projected recipe with a copy carrying the new
// count. A missing id means a concurrent refresh dropped the recipe;
// the bump is then a no-op. Caller holds s.mu.
func (s *Service) bumpCount(recipeID int64, delta int64) {
	for i := range s.recipes {
		if s.recipes[i].ID == recipeID {
			s.recipes[i] = domain.WithLikeCount(s.recipes[i], s.recipes[i].LikeCount+delta)
			return
		}
	}
}

func (s *Service) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Service) notify() {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	if len(fns) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}
