package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinetrack/internal/dto"
	"cinetrack/internal/handler"
	"cinetrack/internal/models"
	"cinetrack/internal/repository"
	"cinetrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubListsService struct {
	rows   []models.ConsolidatedRow
	row    models.ConsolidatedRow
	rowErr error
}

func (s *stubListsService) Consolidate(ctx context.Context, userID string) ([]models.ConsolidatedRow, error) {
	return s.rows, nil
}

func (s *stubListsService) ConsolidateOne(ctx context.Context, userID string, movieID int64) (models.ConsolidatedRow, error) {
	return s.row, s.rowErr
}

type stubReconcileService struct {
	applied    int
	cleared    int
	applyErr   error
	lastPrev   service.Snapshot
	lastNext   service.Snapshot
	lastMovie  int64
	lastUserID string
}

func (s *stubReconcileService) Apply(ctx context.Context, userID string, movieID int64, prev, next service.Snapshot) error {
	s.applied++
	s.lastUserID = userID
	s.lastMovie = movieID
	s.lastPrev = prev
	s.lastNext = next
	return s.applyErr
}

func (s *stubReconcileService) DeleteAllHistory(ctx context.Context, userID string) error {
	s.cleared++
	s.lastUserID = userID
	return nil
}

const testUserID = "a2a3bfa0-23fb-4c91-9200-1cbbca628a4f"

func newListsRouter(lists service.ListsService, reconcile service.ReconcileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewListsHandler(lists, reconcile).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestGetListsReturnsConsolidatedRows(t *testing.T) {
	lists := &stubListsService{rows: []models.ConsolidatedRow{
		{
			MovieID:        7,
			MovieName:      "Liar Liar",
			InWatchHistory: true,
			WatchDate:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			Rating:         4,
			Favorite:       true,
		},
		{MovieID: 9, MovieName: "Alien", InMylist: true, WatchDate: models.WatchDateSentinel},
	}}
	r := newListsRouter(lists, &stubReconcileService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+testUserID+"/lists", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "2024-05-20", resp.Items[0].WatchDate)
	assert.Equal(t, "1970-01-01", resp.Items[1].WatchDate)
}

func TestGetListsRejectsBadUserID(t *testing.T) {
	r := newListsRouter(&stubListsService{}, &stubReconcileService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/42/lists", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetListRowReturnsSingleRow(t *testing.T) {
	lists := &stubListsService{row: models.ConsolidatedRow{
		MovieID:        7,
		MovieName:      "Liar Liar",
		InWatchHistory: true,
		WatchDate:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Rating:         4,
	}}
	r := newListsRouter(lists, &stubReconcileService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+testUserID+"/lists/7", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ConsolidatedRowResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.MovieID)
	assert.True(t, resp.InWatchHistory)
	assert.Equal(t, "2024-05-20", resp.WatchDate)
}

func TestGetListRowAbsentIs404(t *testing.T) {
	lists := &stubListsService{rowErr: repository.ErrEntryNotFound}
	r := newListsRouter(lists, &stubReconcileService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+testUserID+"/lists/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateListRowAppliesSnapshots(t *testing.T) {
	reconcile := &stubReconcileService{}
	r := newListsRouter(&stubListsService{}, reconcile)

	body, err := json.Marshal(dto.ReconcileRequest{
		Previous: &dto.SnapshotRequest{},
		New:      &dto.SnapshotRequest{InWatchHistory: true, WatchDate: "2024-05-20", Rating: 4},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+testUserID+"/lists/7", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, reconcile.applied)
	assert.Equal(t, testUserID, reconcile.lastUserID)
	assert.Equal(t, int64(7), reconcile.lastMovie)
	assert.True(t, reconcile.lastNext.InWatchHistory)
	require.NotNil(t, reconcile.lastNext.WatchDate)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), *reconcile.lastNext.WatchDate)
}

func TestUpdateListRowUnknownMovie(t *testing.T) {
	reconcile := &stubReconcileService{applyErr: service.ErrMovieNotFound}
	r := newListsRouter(&stubListsService{}, reconcile)

	body, err := json.Marshal(dto.ReconcileRequest{
		Previous: &dto.SnapshotRequest{},
		New:      &dto.SnapshotRequest{InMylist: true},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+testUserID+"/lists/404", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteHistoryEndpoint(t *testing.T) {
	reconcile := &stubReconcileService{}
	r := newListsRouter(&stubListsService{}, reconcile)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+testUserID+"/watch-history", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, reconcile.cleared)
	assert.Equal(t, testUserID, reconcile.lastUserID)
}
