package services

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// PayPalService verifies completed PayPal orders against the Orders v2 API.
// The client only ever reads order state, it never captures or refunds.
type PayPalService struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

func NewPayPalService() *PayPalService {
	base := os.Getenv("PAYPAL_BASE_URL")
	if base == "" {
		base = "https://api-m.sandbox.paypal.com"
	}
	return &PayPalService{
		BaseURL:      strings.TrimRight(base, "/"),
		ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		ClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *PayPalService) accessToken() (string, error) {
	if s.ClientID == "" || s.ClientSecret == "" {
		return "", fmt.Errorf("%w: paypal credentials not configured", ErrPaymentRejected)
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequest("POST", s.BaseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("cannot build request: %w", err)
	}
	req.SetBasicAuth(s.ClientID, s.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("paypal token request returned %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("cannot decode token response: %w", err)
	}
	return out.AccessToken, nil
}

type paypalOrder struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Amount struct {
			CurrencyCode string `json:"currency_code"`
			Value        string `json:"value"`
		} `json:"amount"`
	} `json:"purchase_units"`
}

// VerifyOrder confirms an order is COMPLETED and its captured amount matches
// the expected total. Mismatches and non-completed orders come back as
// ErrPaymentRejected so callers can map them to a client error.
func (s *PayPalService) VerifyOrder(orderID string, expectedAmount float64, expectedCurrency string) (*PaymentRecord, error) {
	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", s.BaseURL+"/v2/checkout/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: paypal order %s not found", ErrPaymentRejected, orderID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("paypal order lookup returned %d: %s", resp.StatusCode, string(body))
	}

	var order paypalOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("cannot decode order response: %w", err)
	}

	if order.Status != "COMPLETED" {
		return nil, fmt.Errorf("%w: paypal order %s status is %s", ErrPaymentRejected, orderID, order.Status)
	}
	if len(order.PurchaseUnits) == 0 {
		return nil, fmt.Errorf("%w: paypal order %s has no purchase units", ErrPaymentRejected, orderID)
	}

	amount, err := strconv.ParseFloat(order.PurchaseUnits[0].Amount.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse paypal amount %q: %w", order.PurchaseUnits[0].Amount.Value, err)
	}
	currency := order.PurchaseUnits[0].Amount.CurrencyCode
	if math.Abs(amount-expectedAmount) > 0.01 {
		return nil, fmt.Errorf("%w: paypal order %s amount %.2f does not match %.2f",
			ErrPaymentRejected, orderID, amount, expectedAmount)
	}
	if expectedCurrency != "" && !strings.EqualFold(currency, expectedCurrency) {
		return nil, fmt.Errorf("%w: paypal order %s currency %s does not match %s",
			ErrPaymentRejected, orderID, currency, expectedCurrency)
	}

	return &PaymentRecord{
		Provider:      "paypal",
		TransactionID: order.ID,
		Amount:        amount,
		Currency:      currency,
		Verified:      true,
	}, nil
}
