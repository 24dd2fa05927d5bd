package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinetrack/internal/models"

	"gorm.io/gorm"
)

// CatalogRepo answers the read-only facet queries over the movie catalog.
// Each query covers exactly one filter dimension; combining them is the
// search orchestrator's job.
type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Keywords").
		Preload("People").
		Preload("Studios").
		First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return &m, nil
}

func (r *CatalogRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("movie exists: %w", err)
	}
	return count > 0, nil
}

// FindByTitle matches movies by name. Exact mode compares the full title;
// otherwise the pattern matches case-insensitively anywhere in the title.
func (r *CatalogRepo) FindByTitle(ctx context.Context, pattern string, exact bool) ([]models.Movie, error) {
	var list []models.Movie
	db := r.db.WithContext(ctx)
	if exact {
		db = db.Where("title = ?", pattern)
	} else {
		db = db.Where("title ILIKE ?", "%"+pattern+"%")
	}
	if err := db.Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find by title: %w", err)
	}
	return list, nil
}

func (r *CatalogRepo) FindByGenres(ctx context.Context, names []string) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Distinct("movies.*").
		Joins("JOIN movie_genres mg ON mg.movie_id = movies.id").
		Joins("JOIN genres g ON g.id = mg.genre_id").
		Where("g.name IN ?", names).
		Order("movies.id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find by genre: %w", err)
	}
	return list, nil
}

func (r *CatalogRepo) FindByKeyword(ctx context.Context, name string) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Distinct("movies.*").
		Joins("JOIN movie_keywords mk ON mk.movie_id = movies.id").
		Joins("JOIN keywords k ON k.id = mk.keyword_id").
		Where("k.name = ?", name).
		Order("movies.id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find by keyword: %w", err)
	}
	return list, nil
}

func (r *CatalogRepo) FindByPerson(ctx context.Context, name string) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Distinct("movies.*").
		Joins("JOIN movie_credits mc ON mc.movie_id = movies.id").
		Joins("JOIN people p ON p.id = mc.person_id").
		Where("p.name = ?", name).
		Order("movies.id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find by person: %w", err)
	}
	return list, nil
}

func (r *CatalogRepo) FindByStudio(ctx context.Context, name string) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Distinct("movies.*").
		Joins("JOIN movie_studios ms ON ms.movie_id = movies.id").
		Joins("JOIN studios s ON s.id = ms.studio_id").
		Where("s.name = ?", name).
		Order("movies.id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find by studio: %w", err)
	}
	return list, nil
}

// FindByReleaseDateRange narrows the catalog to movies released inside the
// given bounds; a nil bound leaves that side open.
func (r *CatalogRepo) FindByReleaseDateRange(ctx context.Context, from, to *time.Time) ([]models.Movie, error) {
	var list []models.Movie
	db := r.db.WithContext(ctx)
	if from != nil {
		db = db.Where("release_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("release_date <= ?", *to)
	}
	if err := db.Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find by release date: %w", err)
	}
	return list, nil
}

// GetNames resolves display names for a batch of movie IDs in one query.
func (r *CatalogRepo) GetNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []struct {
		ID    int64
		Title string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Select("id", "title").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get movie names: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Title
	}
	return names, nil
}

func (r *CatalogRepo) DistinctGenreNames(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Genre{})
}

func (r *CatalogRepo) DistinctKeywordNames(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Keyword{})
}

func (r *CatalogRepo) DistinctPersonNames(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Person{})
}

func (r *CatalogRepo) DistinctStudioNames(ctx context.Context) ([]string, error) {
	return r.distinctNames(ctx, &models.Studio{})
}

func (r *CatalogRepo) distinctNames(ctx context.Context, model any) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(model).
		Distinct().
		Order("name").
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("distinct names: %w", err)
	}
	return names, nil
}
