package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cinetrack/internal/dto"
	"cinetrack/internal/repository"

	"github.com/gin-gonic/gin"
)

// MovieHandler serves single-movie detail and the distinct facet values
// backing the search filter dropdowns.
type MovieHandler struct {
	catalog *repository.CatalogRepo
}

func NewMovieHandler(catalog *repository.CatalogRepo) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/movies/:id", h.GetByID)
	rg.GET("/facets/genres", h.facetValues(h.catalog.DistinctGenreNames))
	rg.GET("/facets/keywords", h.facetValues(h.catalog.DistinctKeywordNames))
	rg.GET("/facets/people", h.facetValues(h.catalog.DistinctPersonNames))
	rg.GET("/facets/studios", h.facetValues(h.catalog.DistinctStudioNames))
}

func (h *MovieHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	movie, err := h.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromMovieDetail(*movie))
}

func (h *MovieHandler) facetValues(fetch func(ctx context.Context) ([]string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		names, err := fetch(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"values": names, "total": len(names)})
	}
}
