package models

import "time"

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (Genre) TableName() string {
	return "genres"
}

type Keyword struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (Keyword) TableName() string {
	return "keywords"
}

type Person struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string     `json:"name" gorm:"unique;not null"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	Country   *string    `json:"country,omitempty"`
}

func (Person) TableName() string {
	return "people"
}

type Studio struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (Studio) TableName() string {
	return "studios"
}
