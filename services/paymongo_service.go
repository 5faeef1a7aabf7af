package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// PayMongoService verifies GCash payments against the PayMongo Payments API.
// Amounts on the wire are in centavos.
type PayMongoService struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewPayMongoService() *PayMongoService {
	base := os.Getenv("PAYMONGO_BASE_URL")
	if base == "" {
		base = "https://api.paymongo.com"
	}
	return &PayMongoService{
		BaseURL:    strings.TrimRight(base, "/"),
		SecretKey:  os.Getenv("PAYMONGO_SECRET_KEY"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *PayMongoService) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(s.SecretKey+":"))
}

type paymongoPayment struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Status   string `json:"status"`
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
		} `json:"attributes"`
	} `json:"data"`
}

// VerifyPayment confirms a payment is in "paid" status and the amount matches
// the expected total in whole currency units.
func (s *PayMongoService) VerifyPayment(paymentID string, expectedAmount float64, expectedCurrency string) (*PaymentRecord, error) {
	if s.SecretKey == "" {
		return nil, fmt.Errorf("%w: paymongo secret key not configured", ErrPaymentRejected)
	}

	req, err := http.NewRequest("GET", s.BaseURL+"/v1/payments/"+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Authorization", s.authHeader())

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: paymongo payment %s not found", ErrPaymentRejected, paymentID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("paymongo payment lookup returned %d: %s", resp.StatusCode, string(body))
	}

	var payment paymongoPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("cannot decode payment response: %w", err)
	}

	attrs := payment.Data.Attributes
	if attrs.Status != "paid" {
		return nil, fmt.Errorf("%w: paymongo payment %s status is %s", ErrPaymentRejected, paymentID, attrs.Status)
	}

	amount := float64(attrs.Amount) / 100.0
	if math.Abs(amount-expectedAmount) > 0.01 {
		return nil, fmt.Errorf("%w: paymongo payment %s amount %.2f does not match %.2f",
			ErrPaymentRejected, paymentID, amount, expectedAmount)
	}
	if expectedCurrency != "" && !strings.EqualFold(attrs.Currency, expectedCurrency) {
		return nil, fmt.Errorf("%w: paymongo payment %s currency %s does not match %s",
			ErrPaymentRejected, paymentID, attrs.Currency, expectedCurrency)
	}

	return &PaymentRecord{
		Provider:      "paymongo",
		TransactionID: payment.Data.ID,
		Amount:        amount,
		Currency:      strings.ToUpper(attrs.Currency),
		Verified:      true,
	}, nil
}
