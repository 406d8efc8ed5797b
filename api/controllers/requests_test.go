package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/crestviewems/supplyline-backend/api/middleware"
	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/internal/requests"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/crestviewems/supplyline-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubLiveView struct {
	idx             *catalog.Index
	board           []requests.Group
	rows            []models.Request
	staticsRefresh  int
	requestsRefresh int
}

func (s *stubLiveView) Index() *catalog.Index      { return s.idx }
func (s *stubLiveView) Board() []requests.Group    { return s.board }
func (s *stubLiveView) Requests() []models.Request { return s.rows }
func (s *stubLiveView) Err() error                 { return nil }

func (s *stubLiveView) RefreshStatics(ctx context.Context) error {
	s.staticsRefresh++
	return nil
}

func (s *stubLiveView) RefreshRequests(ctx context.Context) error {
	s.requestsRefresh++
	return nil
}

func newStubLiveView() *stubLiveView {
	return &stubLiveView{idx: catalog.BuildIndex(nil, nil, nil, nil, nil)}
}

type stubReqRepo struct {
	rows map[uuid.UUID]*models.Request
}

func newStubReqRepo() *stubReqRepo {
	return &stubReqRepo{rows: map[uuid.UUID]*models.Request{}}
}

func (s *stubReqRepo) WithTx(tx *gorm.DB) requests.Repository { return s }

func (s *stubReqRepo) ListAll(ctx context.Context) ([]models.Request, error) {
	out := []models.Request{}
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubReqRepo) Find(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *stubReqRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Request, error) {
	out := []models.Request{}
	for _, id := range ids {
		if row, ok := s.rows[id]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *stubReqRepo) Create(ctx context.Context, req *models.Request) (*models.Request, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	// The real repo gets these from gorm's autoCreateTime/autoUpdateTime.
	now := time.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
		req.UpdatedAt = now
	}
	s.rows[req.ID] = req
	return req, nil
}

func (s *stubReqRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubReqRepo) UpdateMany(ctx context.Context, ids []uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubReqRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func TestRequestsViewVendorReturnsBoard(t *testing.T) {
	live := newStubLiveView()
	live.board = []requests.Group{{Key: "unassigned", Label: "Unassigned / No Pricing"}}
	handler := RequestsView(live, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests?view=vendor", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data []requests.Group `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Unassigned / No Pricing", envelope.Data[0].Label)
}

func TestRequestsViewItemAppliesStatusFilter(t *testing.T) {
	live := newStubLiveView()
	name := "Tourniquet"
	live.rows = []models.Request{
		{ID: uuid.New(), OtherItemName: &name, Qty: 1, Status: enums.RequestStatusOpen},
		{ID: uuid.New(), OtherItemName: &name, Qty: 1, Status: enums.RequestStatusOrdered},
	}
	handler := RequestsView(live, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests?view=item&status=Ordered", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data []requests.Entry `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, enums.RequestStatusOrdered, envelope.Data[0].Request.Status)
}

func TestRequestsViewRejectsUnknownView(t *testing.T) {
	handler := RequestsView(newStubLiveView(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests?view=calendar", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRequestsViewRejectsBadStatus(t *testing.T) {
	handler := RequestsView(newStubLiveView(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests?status=bogus", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRequestCreateRefreshesLiveView(t *testing.T) {
	live := newStubLiveView()
	svc := requests.NewService(newStubReqRepo(), nil, nil, nil, nil)
	handler := RequestCreate(svc, live, nil)

	body := `{"otherItemName":"Duct tape","qty":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserEmail(req.Context(), "medic@crestviewems.org"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, 1, live.requestsRefresh)
}

func TestRequestCreateReturnsWireTimestamps(t *testing.T) {
	live := newStubLiveView()
	svc := requests.NewService(newStubReqRepo(), nil, nil, nil, nil)
	handler := RequestCreate(svc, live, nil)

	body := `{"otherItemName":"Duct tape","qty":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserEmail(req.Context(), "medic@crestviewems.org"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code)

	var envelope struct {
		Data struct {
			CreatedAt  types.Timestamp  `json:"createdAt"`
			UpdatedAt  types.Timestamp  `json:"updatedAt"`
			ReceivedAt *types.Timestamp `json:"receivedAt"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.False(t, envelope.Data.CreatedAt.IsZero())
	assert.False(t, envelope.Data.UpdatedAt.IsZero())
	assert.Nil(t, envelope.Data.ReceivedAt)
}

func TestRequestCreateRejectsMalformedBody(t *testing.T) {
	live := newStubLiveView()
	svc := requests.NewService(newStubReqRepo(), nil, nil, nil, nil)
	handler := RequestCreate(svc, live, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader("{"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Zero(t, live.requestsRefresh)
}
