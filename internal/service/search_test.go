package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinetrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	byTitle   []models.Movie
	byGenre   []models.Movie
	byKeyword []models.Movie
	byPerson  []models.Movie
	byStudio  []models.Movie
	byRelease []models.Movie

	errs map[string]error
}

func (f *fakeCatalog) FindByTitle(ctx context.Context, pattern string, exact bool) ([]models.Movie, error) {
	return f.byTitle, f.errs["title"]
}

func (f *fakeCatalog) FindByGenres(ctx context.Context, names []string) ([]models.Movie, error) {
	return f.byGenre, f.errs["genre"]
}

func (f *fakeCatalog) FindByKeyword(ctx context.Context, name string) ([]models.Movie, error) {
	return f.byKeyword, f.errs["keyword"]
}

func (f *fakeCatalog) FindByPerson(ctx context.Context, name string) ([]models.Movie, error) {
	return f.byPerson, f.errs["person"]
}

func (f *fakeCatalog) FindByStudio(ctx context.Context, name string) ([]models.Movie, error) {
	return f.byStudio, f.errs["studio"]
}

func (f *fakeCatalog) FindByReleaseDateRange(ctx context.Context, from, to *time.Time) ([]models.Movie, error) {
	return f.byRelease, f.errs["release_date"]
}

func movieList(ids ...int64) []models.Movie {
	movies := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		movies = append(movies, models.Movie{ID: id, Title: "movie"})
	}
	return movies
}

func movieIDs(movies []models.Movie) []int64 {
	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestSearchIntersectsFacets(t *testing.T) {
	// genre matches {1,2,3}, person matches {2,3,4} -> {2,3}
	catalog := &fakeCatalog{
		byGenre:  movieList(1, 2, 3),
		byPerson: movieList(2, 3, 4),
	}
	svc := NewSearchService(catalog)

	result, err := svc.Search(context.Background(), Filters{
		Genres: []string{"Comedy"},
		Person: "Jim Carrey",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, movieIDs(result))
}

func TestSearchThreeFacetIntersection(t *testing.T) {
	catalog := &fakeCatalog{
		byTitle:  movieList(5, 1, 9, 3),
		byGenre:  movieList(3, 9, 7),
		byStudio: movieList(9, 3, 2),
	}
	svc := NewSearchService(catalog)

	result, err := svc.Search(context.Background(), Filters{
		Title:  "the",
		Genres: []string{"Drama"},
		Studio: "Warner",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 9}, movieIDs(result))
}

func TestSearchNoActiveFacetsIsEmpty(t *testing.T) {
	svc := NewSearchService(&fakeCatalog{byTitle: movieList(1, 2)})

	result, err := svc.Search(context.Background(), Filters{})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.True(t, Filters{}.IsZero())

	// whitespace-only facets count as inactive
	result, err = svc.Search(context.Background(), Filters{Title: "   ", Person: "\t"})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestSearchSingleFacetDeduplicates(t *testing.T) {
	catalog := &fakeCatalog{byTitle: movieList(4, 2, 4, 2, 1)}
	svc := NewSearchService(catalog)

	result, err := svc.Search(context.Background(), Filters{Title: "dup"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 4}, movieIDs(result))
}

func TestSearchEmptyFacetCollapsesResult(t *testing.T) {
	catalog := &fakeCatalog{
		byGenre:   movieList(1, 2, 3),
		byKeyword: nil,
	}
	svc := NewSearchService(catalog)

	result, err := svc.Search(context.Background(), Filters{
		Genres:  []string{"Comedy"},
		Keyword: "space",
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestSearchProviderFailurePropagates(t *testing.T) {
	providerErr := errors.New("connection refused")
	catalog := &fakeCatalog{
		byGenre: movieList(1, 2),
		errs:    map[string]error{"person": providerErr},
	}
	svc := NewSearchService(catalog)

	result, err := svc.Search(context.Background(), Filters{
		Genres: []string{"Comedy"},
		Person: "Jim Carrey",
	})
	require.Error(t, err)
	assert.Nil(t, result)

	var facetErr *FacetError
	require.ErrorAs(t, err, &facetErr)
	assert.Equal(t, "person", facetErr.Facet)
	assert.ErrorIs(t, err, providerErr)
}

func TestSearchInvalidFilter(t *testing.T) {
	svc := NewSearchService(&fakeCatalog{})

	_, err := svc.Search(context.Background(), Filters{Genres: []string{"Comedy", " "}})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	from := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Search(context.Background(), Filters{ReleasedFrom: &from, ReleasedTo: &to})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestSearchFirstSeenMetadataWins(t *testing.T) {
	// Movie 2 appears in both facet results with different cached titles;
	// the title facet comes first in declaration order.
	catalog := &fakeCatalog{
		byTitle: []models.Movie{{ID: 2, Title: "Ace Ventura"}},
		byGenre: []models.Movie{{ID: 2, Title: "Ace Ventura (stale)"}},
	}
	svc := NewSearchService(catalog)

	result, err := svc.Search(context.Background(), Filters{
		Title:  "ace",
		Genres: []string{"Comedy"},
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Ace Ventura", result[0].Title)
}

func TestSearchReleaseDateFacet(t *testing.T) {
	catalog := &fakeCatalog{
		byTitle:   movieList(1, 2, 3),
		byRelease: movieList(2, 3, 4),
	}
	svc := NewSearchService(catalog)

	from := time.Date(1994, 1, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.Search(context.Background(), Filters{
		Title:        "the",
		ReleasedFrom: &from,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, movieIDs(result))
}
