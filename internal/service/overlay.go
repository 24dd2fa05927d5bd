package service

import (
	"context"
	"fmt"

	"cinetrack/internal/models"
)

// MembershipChecker reports which of a batch of movies have an entry for
// the user in one user-state relation.
type MembershipChecker interface {
	ExistingMovieIDs(ctx context.Context, userID string, movieIDs []int64) (map[int64]bool, error)
}

type OverlayService interface {
	Annotate(ctx context.Context, userID string, movies []models.Movie) ([]models.AnnotatedMovie, error)
}

type overlayService struct {
	history MembershipChecker
	mylist  MembershipChecker
}

func NewOverlayService(history, mylist MembershipChecker) OverlayService {
	return &overlayService{history: history, mylist: mylist}
}

// Annotate attaches in_watch_history and in_mylist flags to every input
// movie. Both flags are always set; a missing entry means false. Storage
// is never mutated.
func (s *overlayService) Annotate(ctx context.Context, userID string, movies []models.Movie) ([]models.AnnotatedMovie, error) {
	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}

	watched, err := s.history.ExistingMovieIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("annotate watch history: %w", err)
	}
	listed, err := s.mylist.ExistingMovieIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("annotate mylist: %w", err)
	}

	annotated := make([]models.AnnotatedMovie, 0, len(movies))
	for _, m := range movies {
		annotated = append(annotated, models.AnnotatedMovie{
			Movie:          m,
			InWatchHistory: watched[m.ID],
			InMylist:       listed[m.ID],
		})
	}
	return annotated, nil
}
