package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinetrack/internal/models"
	"cinetrack/internal/repository"
)

// Snapshot is the displayed state of one (user, movie) row. The
// reconciler diffs a previous snapshot against an edited one and applies
// the minimal storage mutation to each relation.
type Snapshot struct {
	InWatchHistory bool
	InMylist       bool
	WatchDate      *time.Time
	Rating         float64
	Favorite       bool
}

type WatchHistoryStore interface {
	Create(ctx context.Context, entry *models.WatchHistory) error
	Update(ctx context.Context, entry *models.WatchHistory) error
	Delete(ctx context.Context, userID string, movieID int64) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type MylistStore interface {
	Create(ctx context.Context, userID string, movieID int64) error
	Delete(ctx context.Context, userID string, movieID int64) error
}

type movieChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ReconcileService interface {
	Apply(ctx context.Context, userID string, movieID int64, prev, next Snapshot) error
	DeleteAllHistory(ctx context.Context, userID string) error
}

type reconcileService struct {
	history WatchHistoryStore
	mylist  MylistStore
	catalog movieChecker
	now     func() time.Time
}

func NewReconcileService(history WatchHistoryStore, mylist MylistStore, catalog movieChecker) ReconcileService {
	return &reconcileService{
		history: history,
		mylist:  mylist,
		catalog: catalog,
		now:     time.Now,
	}
}

// Apply reconciles one edited row. The two relations are evaluated
// independently: toggling watch-history membership never touches mylist
// membership and vice versa. Last write wins; there is no pending state.
func (s *reconcileService) Apply(ctx context.Context, userID string, movieID int64, prev, next Snapshot) error {
	if next.Rating < 0 || next.Rating > 5 {
		return fmt.Errorf("%w: %v not in [0, 5]", ErrInvalidRating, next.Rating)
	}

	historyAction := transition(prev.InWatchHistory, next.InWatchHistory)
	mylistAction := transition(prev.InMylist, next.InMylist)
	historyWrite := historyAction == actionCreate || historyAction == actionDelete ||
		(historyAction == actionKeep && s.fieldsChanged(prev, next))
	mylistWrite := mylistAction == actionCreate || mylistAction == actionDelete
	if !historyWrite && !mylistWrite {
		return nil
	}

	exists, err := s.catalog.Exists(ctx, movieID)
	if err != nil {
		return fmt.Errorf("reconcile movie %d: %w", movieID, err)
	}
	if !exists {
		return fmt.Errorf("reconcile movie %d: %w", movieID, ErrMovieNotFound)
	}

	if err := s.applyHistory(ctx, userID, movieID, prev, next, historyAction); err != nil {
		return fmt.Errorf("watch history: %w", err)
	}
	if err := s.applyMylist(ctx, userID, movieID, mylistAction); err != nil {
		return fmt.Errorf("mylist: %w", err)
	}
	return nil
}

// DeleteAllHistory removes every watch-history entry for the user in one
// operation, bypassing per-row diffing. Mylist rows are unaffected.
func (s *reconcileService) DeleteAllHistory(ctx context.Context, userID string) error {
	if err := s.history.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete all history: %w", err)
	}
	return nil
}

type action int

const (
	actionNone action = iota
	actionCreate
	actionDelete
	actionKeep
)

func transition(prev, next bool) action {
	switch {
	case !prev && next:
		return actionCreate
	case prev && !next:
		return actionDelete
	case prev && next:
		return actionKeep
	default:
		return actionNone
	}
}

// fieldsChanged compares the editable watch-history fields. Only
// meaningful when the row stays present in the watch history.
func (s *reconcileService) fieldsChanged(prev, next Snapshot) bool {
	if !prev.InWatchHistory || !next.InWatchHistory {
		return false
	}
	if next.Rating != prev.Rating || next.Favorite != prev.Favorite {
		return true
	}
	if next.WatchDate == nil || next.WatchDate.Equal(models.WatchDateSentinel) {
		// Absent or display-sentinel date means "not supplied".
		return false
	}
	return prev.WatchDate == nil || !next.WatchDate.Equal(*prev.WatchDate)
}

func (s *reconcileService) applyHistory(ctx context.Context, userID string, movieID int64, prev, next Snapshot, act action) error {
	entry := &models.WatchHistory{
		UserID:    userID,
		MovieID:   movieID,
		WatchDate: s.effectiveDate(prev, next),
		Rating:    next.Rating,
		Favorite:  next.Favorite,
	}

	switch act {
	case actionCreate:
		err := s.history.Create(ctx, entry)
		if errors.Is(err, repository.ErrDuplicateEntry) {
			// Row already exists; fall back to an idempotent overwrite.
			return s.history.Update(ctx, entry)
		}
		return err
	case actionDelete:
		err := s.history.Delete(ctx, userID, movieID)
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil
		}
		return err
	case actionKeep:
		if !s.fieldsChanged(prev, next) {
			return nil
		}
		return s.history.Update(ctx, entry)
	default:
		return nil
	}
}

func (s *reconcileService) applyMylist(ctx context.Context, userID string, movieID int64, act action) error {
	switch act {
	case actionCreate:
		err := s.mylist.Create(ctx, userID, movieID)
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil
		}
		return err
	case actionDelete:
		err := s.mylist.Delete(ctx, userID, movieID)
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil
		}
		return err
	default:
		return nil
	}
}

// effectiveDate picks the watch date to persist. A nil or epoch-sentinel
// date counts as "not supplied": creation defaults to now, updates keep
// the previous date.
func (s *reconcileService) effectiveDate(prev, next Snapshot) time.Time {
	if next.WatchDate != nil && !next.WatchDate.Equal(models.WatchDateSentinel) {
		return *next.WatchDate
	}
	if prev.InWatchHistory && prev.WatchDate != nil {
		return *prev.WatchDate
	}
	return s.now()
}
