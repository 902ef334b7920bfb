package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(20000), req["amount"])
		assert.Equal(t, "TWD", req["currency"])
		assert.Equal(t, float64(1), req["payment_capture"])

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"id": "gw_order_123"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key_id", "key_secret")
	orderRef, err := client.CreateOrder(context.Background(), 20000, "TWD")

	assert.NoError(t, err)
	assert.Equal(t, "gw_order_123", orderRef)
}

func TestCreateOrderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key_id", "key_secret")
	_, err := client.CreateOrder(context.Background(), 100, "TWD")

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrderConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "key_id", "key_secret")
	_, err := client.CreateOrder(context.Background(), 100, "TWD")

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateOrderEmptyID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": ""})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key_id", "key_secret")
	_, err := client.CreateOrder(context.Background(), 100, "TWD")

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
