package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := Config{ServiceName: "storefront-test", DefaultSessionID: "default"}
	router, err := NewApp(cfg, noop.NewMeterProvider().Meter("test"), tracenoop.NewTracerProvider().Tracer("test"), zerolog.Nop())
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeScreen(t *testing.T, w *httptest.ResponseRecorder) ScreenView {
	t.Helper()
	var view ScreenView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestHandlers_PenScenario(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", "", ProductRequest{Name: "Pen", Price: "1.50"})
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeScreen(t, w)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "Pen - $1.50", view.Products[0].Label)

	w = doJSON(t, router, http.MethodPost, "/api/cart", "", AddToCartRequest{ProductID: view.Products[0].ID})
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeScreen(t, w)
	assert.Equal(t, "Total: $1.50", view.Total)
	require.Len(t, view.Cart, 1)

	w = doJSON(t, router, http.MethodPost, "/api/payments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Notice.Success)
	assert.Equal(t, PaymentSuccessMessage, resp.Notice.Message)
	assert.Empty(t, resp.Screen.Cart)
	assert.Equal(t, "Total: $0.00", resp.Screen.Total)
	assert.Equal(t, SuccessBanner, resp.Screen.Banner)
}

func TestHandlers_EmptyCartPayment(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/payments", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Notice.Success)
	assert.Equal(t, EmptyCartMessage, resp.Notice.Message)
	assert.Empty(t, resp.Screen.Banner)
}

func TestHandlers_ErrorStatuses(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"malformed price", http.MethodPost, "/api/products", ProductRequest{Name: "Bad", Price: "abc"}, http.StatusUnprocessableEntity},
		{"negative price", http.MethodPost, "/api/products", ProductRequest{Name: "Bad", Price: "-3"}, http.StatusUnprocessableEntity},
		{"scientific notation price", http.MethodPost, "/api/products", ProductRequest{Name: "Big", Price: "1e50000000"}, http.StatusUnprocessableEntity},
		{"commit without edit", http.MethodPost, "/api/edit/commit", ProductRequest{Name: "X", Price: "1"}, http.StatusConflict},
		{"edit unknown product", http.MethodPost, "/api/products/missing/edit", nil, http.StatusNotFound},
		{"cart unknown product", http.MethodPost, "/api/cart", AddToCartRequest{ProductID: "missing"}, http.StatusNotFound},
		{"cart missing product id", http.MethodPost, "/api/cart", map[string]string{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, "", tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestHandlers_EmptyFieldsAreNoOp(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", "", ProductRequest{Name: "", Price: "1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeScreen(t, w).Products)
}

func TestHandlers_FormEditDelete(t *testing.T) {
	router := newTestRouter(t)
	session := "edit-session"

	w := doJSON(t, router, http.MethodPut, "/api/form", session, map[string]string{"name": "Pen", "price": "3"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Form{Name: "Pen", Price: "3"}, decodeScreen(t, w).Form)

	w = doJSON(t, router, http.MethodPost, "/api/form/submit", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeScreen(t, w)
	require.Len(t, view.Products, 1)
	id := view.Products[0].ID

	w = doJSON(t, router, http.MethodPost, "/api/products/"+id+"/edit", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeScreen(t, w)
	assert.Equal(t, UpdateProductLabel, view.PrimaryButton)
	assert.Equal(t, Form{Name: "Pen", Price: "3"}, view.Form)

	w = doJSON(t, router, http.MethodPost, "/api/edit/commit", session, ProductRequest{Name: "Marker", Price: "4.5"})
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeScreen(t, w)
	assert.Equal(t, AddProductLabel, view.PrimaryButton)
	assert.Equal(t, "Marker - $4.50", view.Products[0].Label)
	assert.Equal(t, id, view.Products[0].ID)

	w = doJSON(t, router, http.MethodPost, "/api/products/"+id+"/edit", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/form/cancel", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ModeAdd, decodeScreen(t, w).Mode)

	w = doJSON(t, router, http.MethodDelete, "/api/products/"+id, session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeScreen(t, w).Products)

	w = doJSON(t, router, http.MethodGet, "/api/screen", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeScreen(t, w).Products, "default session is separate")
}
