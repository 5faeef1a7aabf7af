package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paypalTestServer(t *testing.T, status string, value string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "token-1"})
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		orderID := r.URL.Path[len("/v2/checkout/orders/"):]
		if orderID == "MISSING" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     orderID,
			"status": status,
			"purchase_units": []map[string]interface{}{
				{"amount": map[string]string{"currency_code": "PHP", "value": value}},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPayPalVerifyOrder(t *testing.T) {
	srv := paypalTestServer(t, "COMPLETED", "5600.00")
	svc := &PayPalService{
		BaseURL:      srv.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		HTTPClient:   &http.Client{Timeout: 5 * time.Second},
	}

	record, err := svc.VerifyOrder("ORDER-1", 5600, "PHP")
	require.NoError(t, err)
	assert.True(t, record.Verified)
	assert.Equal(t, "paypal", record.Provider)
	assert.Equal(t, "ORDER-1", record.TransactionID)
	assert.Equal(t, 5600.0, record.Amount)

	t.Run("order not found", func(t *testing.T) {
		_, err := svc.VerifyOrder("MISSING", 5600, "PHP")
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		_, err := svc.VerifyOrder("ORDER-1", 9999, "PHP")
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := svc.VerifyOrder("ORDER-1", 5600, "USD")
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})

	t.Run("missing credentials", func(t *testing.T) {
		bare := &PayPalService{BaseURL: srv.URL, HTTPClient: svc.HTTPClient}
		_, err := bare.VerifyOrder("ORDER-1", 5600, "PHP")
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})
}

func TestPayPalVerifyOrderNotCompleted(t *testing.T) {
	srv := paypalTestServer(t, "CREATED", "5600.00")
	svc := &PayPalService{
		BaseURL:      srv.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		HTTPClient:   &http.Client{Timeout: 5 * time.Second},
	}
	_, err := svc.VerifyOrder("ORDER-2", 5600, "PHP")
	assert.ErrorIs(t, err, ErrPaymentRejected)
}

func paymongoTestServer(t *testing.T, status string, centavos int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/payments/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		paymentID := r.URL.Path[len("/v1/payments/"):]
		if paymentID == "MISSING" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id": paymentID,
				"attributes": map[string]interface{}{
					"status":   status,
					"amount":   centavos,
					"currency": "PHP",
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPayMongoVerifyPayment(t *testing.T) {
	srv := paymongoTestServer(t, "paid", 300000)
	svc := &PayMongoService{
		BaseURL:    srv.URL,
		SecretKey:  "sk_test_123",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	record, err := svc.VerifyPayment("pay_1", 3000, "PHP")
	require.NoError(t, err)
	assert.True(t, record.Verified)
	assert.Equal(t, "paymongo", record.Provider)
	assert.Equal(t, 3000.0, record.Amount, "centavos converted to whole units")

	t.Run("not found", func(t *testing.T) {
		_, err := svc.VerifyPayment("MISSING", 3000, "PHP")
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})

	t.Run("amount mismatch", func(t *testing.T) {
		_, err := svc.VerifyPayment("pay_1", 2999, "PHP")
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})

	t.Run("missing secret key", func(t *testing.T) {
		bare := &PayMongoService{BaseURL: srv.URL, HTTPClient: svc.HTTPClient}
		_, err := bare.VerifyPayment("pay_1", 3000, "PHP")
		assert.ErrorIs(t, err, ErrPaymentRejected)
	})
}

func TestPayMongoVerifyPaymentNotPaid(t *testing.T) {
	srv := paymongoTestServer(t, "awaiting_next_action", 300000)
	svc := &PayMongoService{
		BaseURL:    srv.URL,
		SecretKey:  "sk_test_123",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
	_, err := svc.VerifyPayment("pay_2", 3000, "PHP")
	assert.ErrorIs(t, err, ErrPaymentRejected)
}
