package models

import "time"

type Movie struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Summary     *string    `json:"summary,omitempty"`

	// associations
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
	Keywords []Keyword `json:"keywords,omitempty" gorm:"many2many:movie_keywords;constraint:OnDelete:CASCADE;"`
	People   []Person  `json:"people,omitempty" gorm:"many2many:movie_credits;constraint:OnDelete:CASCADE;"`
	Studios  []Studio  `json:"studios,omitempty" gorm:"many2many:movie_studios;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}
