package models

import "time"

// Mylist marks a movie as part of a user's personal list. The row's only
// semantic is presence; AddedAt is bookkeeping.
type Mylist struct {
	UserID  string    `gorm:"type:uuid;not null;primaryKey" json:"user_id"`
	MovieID int64     `gorm:"not null;primaryKey" json:"movie_id"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Movie *Movie `gorm:"foreignKey:MovieID" json:"movie,omitempty"`
}

func (Mylist) TableName() string {
	return "mylist"
}
