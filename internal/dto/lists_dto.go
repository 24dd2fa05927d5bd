package dto

import (
	"time"

	"cinetrack/internal/models"
	"cinetrack/internal/service"
)

// ConsolidatedRowResponse: one row of the my-lists view
type ConsolidatedRowResponse struct {
	MovieID        int64   `json:"movie_id"`
	MovieName      string  `json:"movie_name"`
	InWatchHistory bool    `json:"in_watch_history"`
	InMylist       bool    `json:"in_mylist"`
	WatchDate      string  `json:"watch_date"`
	Rating         float64 `json:"rating"`
	Favorite       bool    `json:"favorite"`
}

// ListsResponse: the consolidated my-lists view for one user
type ListsResponse struct {
	Items []ConsolidatedRowResponse `json:"items"`
	Total int                       `json:"total"`
}

// SnapshotRequest: displayed state of one row, before or after an edit
type SnapshotRequest struct {
	InWatchHistory bool    `json:"in_watch_history"`
	InMylist       bool    `json:"in_mylist"`
	WatchDate      string  `json:"watch_date"`
	Rating         float64 `json:"rating"`
	Favorite       bool    `json:"favorite"`
}

// ReconcileRequest: previous and edited snapshots for one movie row
type ReconcileRequest struct {
	Previous *SnapshotRequest `json:"previous" binding:"required"`
	New      *SnapshotRequest `json:"new" binding:"required"`
}

func FromConsolidatedRow(row models.ConsolidatedRow) ConsolidatedRowResponse {
	return ConsolidatedRowResponse{
		MovieID:        row.MovieID,
		MovieName:      row.MovieName,
		InWatchHistory: row.InWatchHistory,
		InMylist:       row.InMylist,
		WatchDate:      row.WatchDate.Format(dateLayout),
		Rating:         row.Rating,
		Favorite:       row.Favorite,
	}
}

// ToSnapshot converts the wire form. An empty watch date means "not
// supplied".
func (r SnapshotRequest) ToSnapshot() (service.Snapshot, error) {
	snap := service.Snapshot{
		InWatchHistory: r.InWatchHistory,
		InMylist:       r.InMylist,
		Rating:         r.Rating,
		Favorite:       r.Favorite,
	}
	if r.WatchDate != "" {
		d, err := time.Parse(dateLayout, r.WatchDate)
		if err != nil {
			return service.Snapshot{}, err
		}
		snap.WatchDate = &d
	}
	return snap, nil
}
