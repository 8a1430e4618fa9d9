package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/plateshare/feedsync/domain"
)

// Snapshot is an immutable view of the profile state.
type Snapshot struct {
	Loading     bool
	Authored    []domain.Recipe
	Liked       []domain.Recipe
	ErrMessages []string
}

// Service aggregates a user's authored and liked recipes. Read-only:
// it never touches the like in-flight registry.
type Service struct {
	recipeRepo domain.RecipeRepository

	mu       sync.Mutex
	loading  bool
	authored []domain.Recipe
	liked    []domain.Recipe
	errs     []error

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Snapshot)
}

// NewService will create a new profile aggregator.
func NewService(r domain.RecipeRepository) *Service {
	return &Service{
		recipeRepo: r,
		subs:       make(map[int]func(Snapshot)),
	}
}

/*
* The two sub-queries run concurrently with errgroup and fail
* independently: a failed leg empties its own projection and records
* its error without blocking or invalidating the other. The closures
* always return nil so the shared context is never canceled early.
 */
func (s *Service) Load(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	s.loading = true
	s.errs = nil
	s.mu.Unlock()
	s.notify()

	var (
		authored, liked       []domain.Recipe
		authoredErr, likedErr error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		authored, authoredErr = s.recipeRepo.FetchByUser(ctx, userID)
		return nil
	})
	g.Go(func() error {
		liked, likedErr = s.recipeRepo.FetchLikedBy(ctx, userID)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	s.loading = false
	s.authored = authored
	s.liked = liked
	if authoredErr != nil {
		logrus.Errorf("failed to fetch authored recipes: %v", authoredErr)
		s.authored = nil
		s.errs = append(s.errs, authoredErr)
	}
	if likedErr != nil {
		logrus.Errorf("failed to fetch liked recipes: %v", likedErr)
		s.liked = nil
		s.errs = append(s.errs, likedErr)
	}
	s.mu.Unlock()
	s.notify()

	return errors.Join(authoredErr, likedErr)
}

// Snapshot returns an immutable copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Loading:  s.loading,
		Authored: make([]domain.Recipe, len(s.authored)),
		Liked:    make([]domain.Recipe, len(s.liked)),
	}
	copy(snap.Authored, s.authored)
	copy(snap.Liked, s.liked)
	for _, err := range s.errs {
		snap.ErrMessages = append(snap.ErrMessages, err.Error())
	}
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
