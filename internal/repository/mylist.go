package repository

import (
	"context"
	"fmt"

	"cinetrack/internal/models"

	"gorm.io/gorm"
)

type MylistRepository interface {
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Mylist, error)
	ExistingMovieIDs(ctx context.Context, userID string, movieIDs []int64) (map[int64]bool, error)
	Create(ctx context.Context, userID string, movieID int64) error
	Delete(ctx context.Context, userID string, movieID int64) error
}

type mylistRepository struct {
	db *gorm.DB
}

func NewMylistRepository(db *gorm.DB) MylistRepository {
	return &mylistRepository{db: db}
}

func (r *mylistRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Mylist{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check mylist membership: %w", err)
	}
	return count > 0, nil
}

func (r *mylistRepository) ListByUser(ctx context.Context, userID string) ([]models.Mylist, error) {
	var list []models.Mylist
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("movie_id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list mylist: %w", err)
	}
	return list, nil
}

func (r *mylistRepository) ExistingMovieIDs(ctx context.Context, userID string, movieIDs []int64) (map[int64]bool, error) {
	present := make(map[int64]bool, len(movieIDs))
	if len(movieIDs) == 0 {
		return present, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Mylist{}).
		Where("user_id = ? AND movie_id IN ?", userID, movieIDs).
		Pluck("movie_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("check mylist membership: %w", err)
	}
	for _, id := range ids {
		present[id] = true
	}
	return present, nil
}

func (r *mylistRepository) Create(ctx context.Context, userID string, movieID int64) error {
	entry := &models.Mylist{
		UserID:  userID,
		MovieID: movieID,
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("add to mylist: %w", err)
	}
	return nil
}

func (r *mylistRepository) Delete(ctx context.Context, userID string, movieID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Mylist{})
	if result.Error != nil {
		return fmt.Errorf("remove from mylist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
