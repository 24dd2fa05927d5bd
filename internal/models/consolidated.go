package models

import "time"

// WatchDateSentinel is substituted for an absent watch date when a
// consolidated row is rendered. It is display-only and never persisted.
var WatchDateSentinel = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// ConsolidatedRow merges a user's watch-history and mylist membership for
// one movie. Built fresh per request, never stored.
type ConsolidatedRow struct {
	MovieID        int64     `json:"movie_id"`
	MovieName      string    `json:"movie_name"`
	InWatchHistory bool      `json:"in_watch_history"`
	InMylist       bool      `json:"in_mylist"`
	WatchDate      time.Time `json:"watch_date"`
	Rating         float64   `json:"rating"`
	Favorite       bool      `json:"favorite"`
}

// AnnotatedMovie is a search result carrying the caller's user-state flags.
type AnnotatedMovie struct {
	Movie
	InWatchHistory bool `json:"in_watch_history"`
	InMylist       bool `json:"in_mylist"`
}
