package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cinetrack/internal/dto"
	"cinetrack/internal/repository"
	"cinetrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListsHandler struct {
	lists     service.ListsService
	reconcile service.ReconcileService
}

func NewListsHandler(lists service.ListsService, reconcile service.ReconcileService) *ListsHandler {
	return &ListsHandler{lists: lists, reconcile: reconcile}
}

func (h *ListsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:user_id/lists", h.Get)
	rg.GET("/users/:user_id/lists/:movie_id", h.GetRow)
	rg.PUT("/users/:user_id/lists/:movie_id", h.Update)
	rg.DELETE("/users/:user_id/watch-history", h.DeleteHistory)
}

func userIDParam(c *gin.Context) (string, bool) {
	userID := c.Param("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return "", false
	}
	return userID, true
}

// Get returns the consolidated watch-history / mylist view for a user.
func (h *ListsHandler) Get(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.lists.Consolidate(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.ConsolidatedRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.FromConsolidatedRow(row))
	}

	c.JSON(http.StatusOK, dto.ListsResponse{
		Items: items,
		Total: len(items),
	})
}

// GetRow returns the consolidated row for one movie, or 404 when the
// movie is in neither relation for the user.
func (h *ListsHandler) GetRow(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	row, err := h.lists.ConsolidateOne(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not in lists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromConsolidatedRow(row))
}

// Update applies an edited row snapshot against storage.
func (h *ListsHandler) Update(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie_id"})
		return
	}

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prev, err := req.Previous.ToSnapshot()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid previous watch_date"})
		return
	}
	next, err := req.New.ToSnapshot()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid new watch_date"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.reconcile.Apply(ctx, userID, movieID, prev, next); err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "list state updated"})
}

// DeleteHistory clears the user's entire watch history. Mylist rows are
// left alone.
func (h *ListsHandler) DeleteHistory(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.reconcile.DeleteAllHistory(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "watch history deleted"})
}
