package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type mockOrderService struct {
	services.OrderService

	ListOrdersFn   func(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error)
	UpdateStatusFn func(ctx context.Context, request *validators.UpdateOrderStatusRequest) (*models.Order, error)
}

func (m *mockOrderService) ListOrders(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	return m.ListOrdersFn(ctx, params)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, request *validators.UpdateOrderStatusRequest) (*models.Order, error) {
	return m.UpdateStatusFn(ctx, request)
}

func setupRouter(h *OrderHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/order/list", h.ListOrders)
	r.POST("/order/status", h.UpdateStatus)
	return r
}

func TestListOrdersPaginates(t *testing.T) {
	var gotParams *utils.PaginationParams
	svc := &mockOrderService{
		ListOrdersFn: func(ctx context.Context, params *utils.PaginationParams) ([]*models.Order, int64, error) {
			gotParams = params
			return []*models.Order{{ID: primitive.NewObjectID()}}, 41, nil
		},
	}
	r := setupRouter(NewOrderHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/order/list?page=3&page_size=20", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, gotParams.Page)
	require.Equal(t, 20, gotParams.PageSize)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 41, resp.Meta.Total)
	require.Equal(t, 1, resp.Meta.Count)
}

func TestUpdateStatus(t *testing.T) {
	orderID := primitive.NewObjectID()
	svc := &mockOrderService{
		UpdateStatusFn: func(ctx context.Context, request *validators.UpdateOrderStatusRequest) (*models.Order, error) {
			if request.OrderID != orderID.Hex() {
				return nil, utils.NewNotFoundError(utils.ErrOrderNotFound)
			}
			return &models.Order{ID: orderID, Status: request.Status}, nil
		},
	}
	r := setupRouter(NewOrderHandler(svc))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/order/status", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"order_id":"` + orderID.Hex() + `","status":"shipped"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Status Updated")

	w = post(`{"order_id":"` + primitive.NewObjectID().Hex() + `","status":"shipped"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = post(`not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
