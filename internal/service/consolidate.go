package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cinetrack/internal/models"
	"cinetrack/internal/repository"
)

type historyReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.WatchHistory, error)
	Get(ctx context.Context, userID string, movieID int64) (*models.WatchHistory, error)
}

type mylistReader interface {
	ListByUser(ctx context.Context, userID string) ([]models.Mylist, error)
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
}

// NameLookup resolves movie display names in batch. The redis cache
// decorates the catalog implementation behind this interface.
type NameLookup interface {
	GetNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

type ListsService interface {
	Consolidate(ctx context.Context, userID string) ([]models.ConsolidatedRow, error)
	ConsolidateOne(ctx context.Context, userID string, movieID int64) (models.ConsolidatedRow, error)
}

type listsService struct {
	history historyReader
	mylist  mylistReader
	names   NameLookup
}

func NewListsService(history historyReader, mylist mylistReader, names NameLookup) ListsService {
	return &listsService{history: history, mylist: mylist, names: names}
}

// Consolidate merges the user's watch history and mylist into one row per
// movie. Watch-history fields are preserved; mylist-only rows get rating 0
// and no favorite flag. An absent watch date is rendered as the epoch
// sentinel but never written back. Both sources empty means an empty
// result, not a page of all-false rows.
func (s *listsService) Consolidate(ctx context.Context, userID string) ([]models.ConsolidatedRow, error) {
	watched, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("consolidate watch history: %w", err)
	}
	listed, err := s.mylist.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("consolidate mylist: %w", err)
	}
	if len(watched) == 0 && len(listed) == 0 {
		return []models.ConsolidatedRow{}, nil
	}

	byMovie := make(map[int64]*models.ConsolidatedRow, len(watched)+len(listed))
	for _, entry := range watched {
		byMovie[entry.MovieID] = &models.ConsolidatedRow{
			MovieID:        entry.MovieID,
			InWatchHistory: true,
			WatchDate:      entry.WatchDate,
			Rating:         entry.Rating,
			Favorite:       entry.Favorite,
		}
	}
	for _, entry := range listed {
		if row, ok := byMovie[entry.MovieID]; ok {
			row.InMylist = true
			continue
		}
		byMovie[entry.MovieID] = &models.ConsolidatedRow{
			MovieID:  entry.MovieID,
			InMylist: true,
		}
	}

	ids := make([]int64, 0, len(byMovie))
	for id := range byMovie {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	names, err := s.names.GetNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("consolidate movie names: %w", err)
	}

	rows := make([]models.ConsolidatedRow, 0, len(ids))
	for _, id := range ids {
		row := byMovie[id]
		row.MovieName = names[id]
		if row.WatchDate.IsZero() {
			row.WatchDate = models.WatchDateSentinel
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

// ConsolidateOne builds the consolidated row for a single movie. A movie
// absent from both relations yields repository.ErrEntryNotFound, matching
// the "row must not appear" rule of the full view.
func (s *listsService) ConsolidateOne(ctx context.Context, userID string, movieID int64) (models.ConsolidatedRow, error) {
	row := models.ConsolidatedRow{MovieID: movieID}

	entry, err := s.history.Get(ctx, userID, movieID)
	switch {
	case err == nil:
		row.InWatchHistory = true
		row.WatchDate = entry.WatchDate
		row.Rating = entry.Rating
		row.Favorite = entry.Favorite
	case !errors.Is(err, repository.ErrEntryNotFound):
		return models.ConsolidatedRow{}, fmt.Errorf("consolidate watch history: %w", err)
	}

	listed, err := s.mylist.Exists(ctx, userID, movieID)
	if err != nil {
		return models.ConsolidatedRow{}, fmt.Errorf("consolidate mylist: %w", err)
	}
	row.InMylist = listed

	if !row.InWatchHistory && !row.InMylist {
		return models.ConsolidatedRow{}, repository.ErrEntryNotFound
	}

	names, err := s.names.GetNames(ctx, []int64{movieID})
	if err != nil {
		return models.ConsolidatedRow{}, fmt.Errorf("consolidate movie names: %w", err)
	}
	row.MovieName = names[movieID]
	if row.WatchDate.IsZero() {
		row.WatchDate = models.WatchDateSentinel
	}
	return row, nil
}
