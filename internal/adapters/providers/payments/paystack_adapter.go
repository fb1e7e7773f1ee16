package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/sportzone/backend/pkg/retry"
)

const defaultPaystackBaseURL = "https://api.paystack.co"

// PaystackConfig configures the Paystack adapter
type PaystackConfig struct {
	PublicKey string
	SecretKey string
	BaseURL   string
	ScriptURL string
	Timeout   time.Duration
	Retry     retry.Config
}

// PaystackAdapter implements PaymentProvider against the Paystack REST API
type PaystackAdapter struct {
	publicKey string
	secretKey string
	baseURL   string
	scriptURL string
	client    *http.Client
	retry     retry.Config
}

// NewPaystackAdapter creates a new Paystack adapter
func NewPaystackAdapter(cfg PaystackConfig) *PaystackAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultPaystackBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.QuickConfig()
	}
	return &PaystackAdapter{
		publicKey: cfg.PublicKey,
		secretKey: cfg.SecretKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		scriptURL: cfg.ScriptURL,
		client:    &http.Client{Timeout: cfg.Timeout},
		retry:     cfg.Retry,
	}
}

var _ providers.PaymentProvider = (*PaystackAdapter)(nil)

// paystackEnvelope is the common response wrapper of the Paystack API
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// StatusError is returned for non-2xx answers from Paystack
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("paystack api error: status %d: %s", e.StatusCode, e.Message)
}

// Name returns the provider name
func (a *PaystackAdapter) Name() string { return "paystack" }

// PublicKey returns the key the inline widget is configured with
func (a *PaystackAdapter) PublicKey() string { return a.publicKey }

// ScriptURL returns the inline widget script location
func (a *PaystackAdapter) ScriptURL() string { return a.scriptURL }

// Load checks that the secret key is accepted by Paystack
func (a *PaystackAdapter) Load(ctx context.Context) error {
	if a.publicKey == "" || a.secretKey == "" {
		return fmt.Errorf("paystack keys are not configured")
	}
	return a.do(ctx, http.MethodGet, "/integration/payment_session_timeout", nil, nil)
}

// Initialize registers a transaction and returns its access code
func (a *PaystackAdapter) Initialize(ctx context.Context, req entities.PaymentInitRequest) (*entities.PaymentInitResult, error) {
	payload := map[string]interface{}{
		"email":     req.Email,
		"amount":    req.AmountMinorUnits,
		"currency":  req.Currency,
		"reference": req.Reference,
	}
	if len(req.Metadata) > 0 {
		payload["metadata"] = req.Metadata
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := a.do(ctx, http.MethodPost, "/transaction/initialize", payload, &data); err != nil {
		return nil, err
	}

	return &entities.PaymentInitResult{
		AccessCode:       data.AccessCode,
		AuthorizationURL: data.AuthorizationURL,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches a transaction by reference
func (a *PaystackAdapter) Verify(ctx context.Context, reference string) (*entities.PaymentVerification, error) {
	var data struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		PaidAt    string `json:"paid_at"`
	}
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := a.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	verification := &entities.PaymentVerification{
		Reference:        data.Reference,
		Status:           data.Status,
		AmountMinorUnits: data.Amount,
		Currency:         data.Currency,
	}
	if data.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			verification.PaidAt = paidAt
		}
	}
	return verification, nil
}

// do sends a request, retrying network failures and 5xx answers. 4xx answers
// are returned immediately.
func (a *PaystackAdapter) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to encode paystack request: %w", err))
		}
	}

	return retry.Do(ctx, a.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return retry.Permanent(err)
		}
		a.addHeaders(req)

		resp, err := a.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}

		var envelope paystackEnvelope
		decodeErr := json.Unmarshal(raw, &envelope)

		if resp.StatusCode >= http.StatusInternalServerError {
			return &StatusError{StatusCode: resp.StatusCode, Message: envelope.Message}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return retry.Permanent(&StatusError{StatusCode: resp.StatusCode, Message: envelope.Message})
		}
		if decodeErr != nil {
			return retry.Permanent(fmt.Errorf("failed to decode paystack response: %w", decodeErr))
		}
		if !envelope.Status {
			return retry.Permanent(fmt.Errorf("paystack rejected request: %s", envelope.Message))
		}
		if out != nil && len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				return retry.Permanent(fmt.Errorf("failed to decode paystack data: %w", err))
			}
		}
		return nil
	})
}

func (a *PaystackAdapter) addHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.secretKey))
	req.Header.Set("Content-Type", "application/json")
}
