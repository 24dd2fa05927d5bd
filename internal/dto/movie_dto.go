package dto

import "cinetrack/internal/models"

// MovieDetailResponse: full movie record with its facet associations
type MovieDetailResponse struct {
	MovieResponse
	Genres   []string `json:"genres"`
	Keywords []string `json:"keywords"`
	People   []string `json:"people"`
	Studios  []string `json:"studios"`
}

func FromMovieDetail(m models.Movie) MovieDetailResponse {
	resp := MovieDetailResponse{
		MovieResponse: FromMovie(m),
		Genres:        make([]string, 0, len(m.Genres)),
		Keywords:      make([]string, 0, len(m.Keywords)),
		People:        make([]string, 0, len(m.People)),
		Studios:       make([]string, 0, len(m.Studios)),
	}
	for _, g := range m.Genres {
		resp.Genres = append(resp.Genres, g.Name)
	}
	for _, k := range m.Keywords {
		resp.Keywords = append(resp.Keywords, k.Name)
	}
	for _, p := range m.People {
		resp.People = append(resp.People, p.Name)
	}
	for _, s := range m.Studios {
		resp.Studios = append(resp.Studios, s.Name)
	}
	return resp
}
