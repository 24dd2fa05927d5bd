package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cinetrack/internal/models"

	"golang.org/x/sync/errgroup"
)

// FacetQuerier answers one filter dimension at a time against the catalog.
type FacetQuerier interface {
	FindByTitle(ctx context.Context, pattern string, exact bool) ([]models.Movie, error)
	FindByGenres(ctx context.Context, names []string) ([]models.Movie, error)
	FindByKeyword(ctx context.Context, name string) ([]models.Movie, error)
	FindByPerson(ctx context.Context, name string) ([]models.Movie, error)
	FindByStudio(ctx context.Context, name string) ([]models.Movie, error)
	FindByReleaseDateRange(ctx context.Context, from, to *time.Time) ([]models.Movie, error)
}

// Filters holds the active facet values for one search. Zero-valued facets
// are skipped entirely.
type Filters struct {
	Title      string
	TitleExact bool
	Genres     []string
	Keyword    string
	Person     string
	Studio     string

	ReleasedFrom *time.Time
	ReleasedTo   *time.Time
}

// IsZero reports whether no facet is active. Searching with zero facets
// yields an empty result, which callers must treat as a distinct state
// from "no matches".
func (f Filters) IsZero() bool {
	return strings.TrimSpace(f.Title) == "" &&
		len(f.Genres) == 0 &&
		strings.TrimSpace(f.Keyword) == "" &&
		strings.TrimSpace(f.Person) == "" &&
		strings.TrimSpace(f.Studio) == "" &&
		f.ReleasedFrom == nil && f.ReleasedTo == nil
}

func (f Filters) validate() error {
	for _, g := range f.Genres {
		if strings.TrimSpace(g) == "" {
			return fmt.Errorf("%w: blank genre name", ErrInvalidFilter)
		}
	}
	if f.ReleasedFrom != nil && f.ReleasedTo != nil && f.ReleasedFrom.After(*f.ReleasedTo) {
		return fmt.Errorf("%w: release date range is inverted", ErrInvalidFilter)
	}
	return nil
}

type SearchService interface {
	Search(ctx context.Context, filters Filters) ([]models.Movie, error)
}

type searchService struct {
	catalog FacetQuerier
}

func NewSearchService(catalog FacetQuerier) SearchService {
	return &searchService{catalog: catalog}
}

type facetQuery struct {
	name string
	run  func(ctx context.Context) ([]models.Movie, error)
}

func (s *searchService) activeFacets(f Filters) []facetQuery {
	var facets []facetQuery
	if title := strings.TrimSpace(f.Title); title != "" {
		exact := f.TitleExact
		facets = append(facets, facetQuery{"title", func(ctx context.Context) ([]models.Movie, error) {
			return s.catalog.FindByTitle(ctx, title, exact)
		}})
	}
	if len(f.Genres) > 0 {
		genres := f.Genres
		facets = append(facets, facetQuery{"genre", func(ctx context.Context) ([]models.Movie, error) {
			return s.catalog.FindByGenres(ctx, genres)
		}})
	}
	if keyword := strings.TrimSpace(f.Keyword); keyword != "" {
		facets = append(facets, facetQuery{"keyword", func(ctx context.Context) ([]models.Movie, error) {
			return s.catalog.FindByKeyword(ctx, keyword)
		}})
	}
	if person := strings.TrimSpace(f.Person); person != "" {
		facets = append(facets, facetQuery{"person", func(ctx context.Context) ([]models.Movie, error) {
			return s.catalog.FindByPerson(ctx, person)
		}})
	}
	if studio := strings.TrimSpace(f.Studio); studio != "" {
		facets = append(facets, facetQuery{"studio", func(ctx context.Context) ([]models.Movie, error) {
			return s.catalog.FindByStudio(ctx, studio)
		}})
	}
	if f.ReleasedFrom != nil || f.ReleasedTo != nil {
		from, to := f.ReleasedFrom, f.ReleasedTo
		facets = append(facets, facetQuery{"release_date", func(ctx context.Context) ([]models.Movie, error) {
			return s.catalog.FindByReleaseDateRange(ctx, from, to)
		}})
	}
	return facets
}

// Search runs every active facet query concurrently and intersects the
// results by movie ID. A single active facet passes through deduplicated;
// zero active facets yield an empty result. Metadata for a movie seen in
// several facet results is taken from the first facet in declaration order.
func (s *searchService) Search(ctx context.Context, filters Filters) ([]models.Movie, error) {
	if err := filters.validate(); err != nil {
		return nil, err
	}

	facets := s.activeFacets(filters)
	if len(facets) == 0 {
		return []models.Movie{}, nil
	}

	results := make([][]models.Movie, len(facets))
	g, gctx := errgroup.WithContext(ctx)
	for i, facet := range facets {
		g.Go(func() error {
			movies, err := facet.run(gctx)
			if err != nil {
				return &FacetError{Facet: facet.name, Err: err}
			}
			results[i] = movies
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Intersect ID sets across facets.
	common := idSet(results[0])
	for _, movies := range results[1:] {
		if len(common) == 0 {
			break
		}
		next := idSet(movies)
		for id := range common {
			if !next[id] {
				delete(common, id)
			}
		}
	}

	// First facet result seen for a movie wins; facet order is fixed.
	seen := make(map[int64]bool, len(common))
	merged := make([]models.Movie, 0, len(common))
	for _, movies := range results {
		for _, m := range movies {
			if common[m.ID] && !seen[m.ID] {
				seen[m.ID] = true
				merged = append(merged, m)
			}
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	return merged, nil
}

func idSet(movies []models.Movie) map[int64]bool {
	set := make(map[int64]bool, len(movies))
	for _, m := range movies {
		set[m.ID] = true
	}
	return set
}
