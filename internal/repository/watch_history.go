package repository

import (
	"context"
	"errors"
	"fmt"

	"cinetrack/internal/models"

	"gorm.io/gorm"
)

type WatchHistoryRepository interface {
	Get(ctx context.Context, userID string, movieID int64) (*models.WatchHistory, error)
	ListByUser(ctx context.Context, userID string) ([]models.WatchHistory, error)
	ExistingMovieIDs(ctx context.Context, userID string, movieIDs []int64) (map[int64]bool, error)
	Create(ctx context.Context, entry *models.WatchHistory) error
	Update(ctx context.Context, entry *models.WatchHistory) error
	Delete(ctx context.Context, userID string, movieID int64) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type watchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) WatchHistoryRepository {
	return &watchHistoryRepository{db: db}
}

func (r *watchHistoryRepository) Get(ctx context.Context, userID string, movieID int64) (*models.WatchHistory, error) {
	var entry models.WatchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get watch history entry: %w", err)
	}
	return &entry, nil
}

func (r *watchHistoryRepository) ListByUser(ctx context.Context, userID string) ([]models.WatchHistory, error) {
	var list []models.WatchHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("movie_id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list watch history: %w", err)
	}
	return list, nil
}

// ExistingMovieIDs reports which of the given movies have a watch-history
// entry for the user, in a single query.
func (r *watchHistoryRepository) ExistingMovieIDs(ctx context.Context, userID string, movieIDs []int64) (map[int64]bool, error) {
	present := make(map[int64]bool, len(movieIDs))
	if len(movieIDs) == 0 {
		return present, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.WatchHistory{}).
		Where("user_id = ? AND movie_id IN ?", userID, movieIDs).
		Pluck("movie_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("check watch history membership: %w", err)
	}
	for _, id := range ids {
		present[id] = true
	}
	return present, nil
}

func (r *watchHistoryRepository) Create(ctx context.Context, entry *models.WatchHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("create watch history entry: %w", err)
	}
	return nil
}

func (r *watchHistoryRepository) Update(ctx context.Context, entry *models.WatchHistory) error {
	result := r.db.WithContext(ctx).
		Model(&models.WatchHistory{}).
		Where("user_id = ? AND movie_id = ?", entry.UserID, entry.MovieID).
		Updates(map[string]any{
			"watch_date": entry.WatchDate,
			"rating":     entry.Rating,
			"favorite":   entry.Favorite,
		})
	if result.Error != nil {
		return fmt.Errorf("update watch history entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *watchHistoryRepository) Delete(ctx context.Context, userID string, movieID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.WatchHistory{})
	if result.Error != nil {
		return fmt.Errorf("delete watch history entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteAllForUser clears the user's entire watch history in one statement.
// The mylist relation is untouched.
func (r *watchHistoryRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.WatchHistory{}).Error; err != nil {
		return fmt.Errorf("delete watch history for user: %w", err)
	}
	return nil
}
