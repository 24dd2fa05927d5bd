package models

import "time"

// WatchHistory records that a user watched a movie. At most one row per
// (user, movie) pair, enforced by the composite primary key.
type WatchHistory struct {
	UserID    string    `gorm:"type:uuid;not null;primaryKey;index:idx_user_movie_history" json:"user_id"`
	MovieID   int64     `gorm:"not null;primaryKey;index:idx_user_movie_history" json:"movie_id"`
	WatchDate time.Time `gorm:"not null" json:"watch_date"`
	Rating    float64   `gorm:"default:0;check:rating >= 0 AND rating <= 5" json:"rating"`
	Favorite  bool      `gorm:"not null;default:false" json:"favorite"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Movie *Movie `gorm:"foreignKey:MovieID" json:"movie,omitempty"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}
