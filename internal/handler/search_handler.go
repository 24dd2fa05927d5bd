package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cinetrack/internal/dto"
	"cinetrack/internal/models"
	"cinetrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SearchHandler struct {
	search  service.SearchService
	overlay service.OverlayService
}

func NewSearchHandler(search service.SearchService, overlay service.OverlayService) *SearchHandler {
	return &SearchHandler{search: search, overlay: overlay}
}

func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.Search)
}

// Search runs a multi-facet catalog search. An optional user_id query
// param annotates each result with that user's state flags.
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filters := service.Filters{
		Title:      req.Title,
		TitleExact: req.TitleExact,
		Genres:     req.Genres,
		Keyword:    req.Keyword,
		Person:     req.Person,
		Studio:     req.Studio,
	}
	if req.ReleasedFrom != "" {
		d, err := time.Parse("2006-01-02", req.ReleasedFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid released_from date"})
			return
		}
		filters.ReleasedFrom = &d
	}
	if req.ReleasedTo != "" {
		d, err := time.Parse("2006-01-02", req.ReleasedTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid released_to date"})
			return
		}
		filters.ReleasedTo = &d
	}

	if filters.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no filters selected"})
		return
	}

	userID := c.Query("user_id")
	if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	movies, err := h.search.Search(ctx, filters)
	if err != nil {
		var facetErr *service.FacetError
		switch {
		case errors.Is(err, service.ErrInvalidFilter):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &facetErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": "search provider failed", "facet": facetErr.Facet})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	annotated := make([]models.AnnotatedMovie, 0, len(movies))
	if userID != "" {
		annotated, err = h.overlay.Annotate(ctx, userID, movies)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	} else {
		for _, m := range movies {
			annotated = append(annotated, models.AnnotatedMovie{Movie: m})
		}
	}

	items := make([]dto.AnnotatedMovieResponse, 0, len(annotated))
	for _, m := range annotated {
		items = append(items, dto.FromAnnotatedMovie(m))
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Items: items,
		Total: len(items),
	})
}
