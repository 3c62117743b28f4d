package pix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default gateway call budget; GeneratePixPayment bounds every call with it.
const DefaultGatewayTimeout = 10 * time.Second

// HTTPGateway talks to the payment provider's REST API to create Pix
// payment intents.
type HTTPGateway struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

// NewHTTPGateway creates a gateway adapter against the provider API.
func NewHTTPGateway(baseURL, accessToken string, timeout time.Duration) *HTTPGateway {
	if timeout == 0 {
		timeout = DefaultGatewayTimeout
	}
	return &HTTPGateway{
		baseURL:     baseURL,
		accessToken: accessToken,
		client:      &http.Client{Timeout: timeout},
	}
}

type createPaymentRequest struct {
	TransactionAmount decimal.Decimal        `json:"transaction_amount"`
	Description       string                 `json:"description"`
	PaymentMethodID   string                 `json:"payment_method_id"`
	Payer             paymentPayer           `json:"payer"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

type paymentPayer struct {
	Email string `json:"email"`
}

type createPaymentResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode string `json:"qr_code"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

func (g *HTTPGateway) CreatePixIntent(ctx context.Context, amount decimal.Decimal, payer PayerInfo) (*PixIntent, error) {
	body := createPaymentRequest{
		TransactionAmount: amount,
		Description:       "wallet top-up",
		PaymentMethodID:   "pix",
		Payer:             paymentPayer{Email: payer.Email},
		Metadata:          map[string]interface{}{"user_id": payer.UserID},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)
	// Provider-side idempotency for retried generate calls
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, ErrGatewayTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrGateway, resp.StatusCode)
	}

	var out createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if out.ID == "" || out.PointOfInteraction.TransactionData.QRCode == "" {
		return nil, fmt.Errorf("%w: gateway returned no payable intent", ErrGateway)
	}

	return &PixIntent{
		GatewayID: out.ID.String(),
		Payload:   out.PointOfInteraction.TransactionData.QRCode,
	}, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
