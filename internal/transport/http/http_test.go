package httptransport_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittiBank/order-manage-web/internal/dal/memory"
	"github.com/kittiBank/order-manage-web/internal/service/models/order"
	"github.com/kittiBank/order-manage-web/internal/service/services/authsvc"
	"github.com/kittiBank/order-manage-web/internal/service/services/ordersvc"
	httptransport "github.com/kittiBank/order-manage-web/internal/transport/http"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(memory.NewSeededOrderRepository()),
	)
	authSvc := authsvc.MustNewAuthService(
		authsvc.WithUserRepository(memory.NewUserRepository()),
		authsvc.WithTokenRepository(memory.NewTokenRepository()),
		authsvc.WithSecret([]byte("test-secret")),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, authSvc)
	transport.RegisterRoutes()

	server := httptest.NewServer(transport.Handler())
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func login(t *testing.T, baseURL string) string {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/register", "", map[string]string{
		"email":    "somchai@example.com",
		"password": "super-secret",
		"name":     "Somchai",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"email":    "somchai@example.com",
		"password": "super-secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotEmpty(t, result.AccessToken)

	return result.AccessToken
}

func TestOrders_RequireAuthentication(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/v1/orders", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrders_ListSortedByTotal(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/orders?sortBy=total&sortOrder=asc", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page order.Page
	require.NoError(t, json.Unmarshal(body, &page))
	require.NotEmpty(t, page.Data)
	for i := 1; i < len(page.Data); i++ {
		assert.LessOrEqual(t, page.Data[i-1].Total, page.Data[i].Total)
	}
}

func TestOrders_CursorPaging(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/v1/orders?limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first order.Page
	require.NoError(t, json.Unmarshal(body, &first))
	require.Len(t, first.Data, 2)
	require.True(t, first.Pagination.HasMore)
	require.Equal(t, 5, first.Pagination.Total)

	url := fmt.Sprintf("%s/api/v1/orders?limit=2&cursor=%s", server.URL, first.Pagination.NextCursor)
	resp, body = doJSON(t, http.MethodGet, url, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second order.Page
	require.NoError(t, json.Unmarshal(body, &second))
	require.Len(t, second.Data, 2)
	assert.NotEqual(t, first.Data[1].ID, second.Data[0].ID)
}

func TestOrders_InvalidStatusFilter(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/v1/orders?status=LOST", token, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrders_CreateUpdateDeleteLifecycle(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	createBody := map[string]any{
		"customerId": "CUST777",
		"items": []map[string]any{
			{"productId": "P1", "quantity": 2, "price": 100},
			{"productId": "P2", "quantity": 1, "price": 50},
		},
		"shippingAddress": map[string]string{
			"name":       "Somchai J.",
			"phone":      "081-111-1111",
			"address":    "99 Rama IV Rd",
			"province":   "Bangkok",
			"postalCode": "10110",
		},
		"shippingFee": 20,
	}

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/orders", token, createBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created order.Order
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, int64(250), created.Subtotal)
	assert.Equal(t, int64(270), created.Total)
	assert.Equal(t, order.StatusPending, created.Status)

	resp, body = doJSON(t, http.MethodPatch, server.URL+"/api/v1/orders/"+created.ID, token, map[string]string{
		"status": "SHIPPED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated order.Order
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, order.StatusShipped, updated.Status)
	assert.Equal(t, created.Subtotal, updated.Subtotal)
	assert.Equal(t, created.Total, updated.Total)

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/v1/orders/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/v1/orders/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrders_CreateValidation(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/orders", token, map[string]any{
		"customerId": "CUST777",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.NotEmpty(t, payload.Message)
}

func TestAuth_RefreshAndProfile(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/register", "", map[string]string{
		"email":    "jane@example.com",
		"password": "super-secret",
		"name":     "Jane",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "super-secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginRes struct {
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(body, &loginRes))

	resp, body = doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/refresh", "", map[string]string{
		"refreshToken": loginRes.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshRes struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(body, &refreshRes))
	require.NotEmpty(t, refreshRes.AccessToken)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/v1/auth/profile", refreshRes.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "jane@example.com")
}

func TestAuth_DuplicateEmail(t *testing.T) {
	server := newTestServer(t)

	body := map[string]string{
		"email":    "dup@example.com",
		"password": "super-secret",
		"name":     "First",
	}
	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuth_InvalidCredentials(t *testing.T) {
	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever1",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
