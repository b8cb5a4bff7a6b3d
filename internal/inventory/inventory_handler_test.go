package inventory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creesler/laundry-pos-backend/internal/inventory"
	inventoryerrors "github.com/creesler/laundry-pos-backend/internal/inventory/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	listFn     func(ctx context.Context) ([]inventory.ItemResponse, error)
	getByIDFn  func(ctx context.Context, id string) (inventory.ItemResponse, error)
	createFn   func(ctx context.Context, req inventory.CreateItemRequest) (inventory.ItemResponse, error)
	updateFn   func(ctx context.Context, id string, req inventory.UpdateItemRequest) (inventory.ItemResponse, error)
	deleteFn   func(ctx context.Context, id string) error
	listLogsFn func(ctx context.Context, q inventory.LogQuery) ([]inventory.LogResponse, error)
}

func (f *fakeService) List(ctx context.Context) ([]inventory.ItemResponse, error) {
	return f.listFn(ctx)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (inventory.ItemResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) Create(ctx context.Context, req inventory.CreateItemRequest) (inventory.ItemResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) Update(ctx context.Context, id string, req inventory.UpdateItemRequest) (inventory.ItemResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeService) ListLogs(ctx context.Context, q inventory.LogQuery) ([]inventory.LogResponse, error) {
	return f.listLogsFn(ctx, q)
}

func setupRouter(svc inventory.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	inventory.RegisterRoutes(api, inventory.NewHandler(svc))
	return r
}

func TestHandler_Create_DuplicateName(t *testing.T) {
	svc := &fakeService{createFn: func(ctx context.Context, req inventory.CreateItemRequest) (inventory.ItemResponse, error) {
		return inventory.ItemResponse{}, inventoryerrors.ErrItemAlreadyExists
	}}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"name":"Detergent"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestHandler_Create_CoercesStringStock(t *testing.T) {
	var gotReq inventory.CreateItemRequest
	svc := &fakeService{createFn: func(ctx context.Context, req inventory.CreateItemRequest) (inventory.ItemResponse, error) {
		gotReq = req
		return inventory.ItemResponse{Name: req.Name}, nil
	}}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	payload := `{"name":"Soap","currentStock":"12","maxStock":"50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 12.0, gotReq.CurrentStock.Float64())
	assert.Equal(t, 50.0, gotReq.MaxStock.Float64())
}

func TestHandler_ListLogs_PassesRange(t *testing.T) {
	var gotQuery inventory.LogQuery
	svc := &fakeService{listLogsFn: func(ctx context.Context, q inventory.LogQuery) ([]inventory.LogResponse, error) {
		gotQuery = q
		return []inventory.LogResponse{}, nil
	}}

	r := setupRouter(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/inventory/logs?startDate=2024-03-01&endDate=2024-03-31", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-01", gotQuery.StartDate)
	assert.Equal(t, "2024-03-31", gotQuery.EndDate)
}
