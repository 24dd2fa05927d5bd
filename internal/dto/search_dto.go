package dto

import "cinetrack/internal/models"

// SearchRequest: one facet value per filter dimension; empty facets are
// skipped by the orchestrator. Dates use the 2006-01-02 layout.
type SearchRequest struct {
	Title        string   `json:"title"`
	TitleExact   bool     `json:"title_exact"`
	Genres       []string `json:"genres"`
	Keyword      string   `json:"keyword"`
	Person       string   `json:"person"`
	Studio       string   `json:"studio"`
	ReleasedFrom string   `json:"released_from"`
	ReleasedTo   string   `json:"released_to"`
}

// MovieResponse: a single catalog movie
type MovieResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate *string `json:"release_date,omitempty"`
	Summary     *string `json:"summary,omitempty"`
}

// AnnotatedMovieResponse: a search result with the caller's state flags
type AnnotatedMovieResponse struct {
	MovieResponse
	InWatchHistory bool `json:"in_watch_history"`
	InMylist       bool `json:"in_mylist"`
}

// SearchResponse: ordered result set for one search
type SearchResponse struct {
	Items []AnnotatedMovieResponse `json:"items"`
	Total int                      `json:"total"`
}

const dateLayout = "2006-01-02"

func FromMovie(m models.Movie) MovieResponse {
	resp := MovieResponse{
		ID:      m.ID,
		Title:   m.Title,
		Summary: m.Summary,
	}
	if m.ReleaseDate != nil {
		s := m.ReleaseDate.Format(dateLayout)
		resp.ReleaseDate = &s
	}
	return resp
}

func FromAnnotatedMovie(m models.AnnotatedMovie) AnnotatedMovieResponse {
	return AnnotatedMovieResponse{
		MovieResponse:  FromMovie(m.Movie),
		InWatchHistory: m.InWatchHistory,
		InMylist:       m.InMylist,
	}
}
