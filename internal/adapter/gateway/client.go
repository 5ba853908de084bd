package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
)

// ErrTransactionNotFound indicates the gateway has no record of the
// requested transaction.
var ErrTransactionNotFound = errors.New("transaction not found")

// Payer identifies who is paying. Identification is the national id
// with punctuation already stripped.
type Payer struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Identification struct {
		Type   string `json:"type"`
		Number string `json:"number"`
	} `json:"identification"`
}

// TransactionRequest describes a create-transaction call. Card fields
// are left empty for PIX.
type TransactionRequest struct {
	Amount       decimal.Decimal `json:"transaction_amount"`
	Description  string          `json:"description"`
	MethodID     string          `json:"payment_method_id"`
	Token        string          `json:"token,omitempty"`
	Installments int             `json:"installments,omitempty"`
	IssuerID     string          `json:"issuer_id,omitempty"`
	Payer        Payer           `json:"payer"`
}

// Transaction is the gateway's view of a payment attempt.
type Transaction struct {
	ID           string
	Status       string
	StatusDetail string
	MethodID     string
	QRCode       string
	QRCodeBase64 string
	TicketURL    string
}

// Method is a payment method supported by the gateway.
type Method struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TypeID    string `json:"payment_type_id"`
	Thumbnail string `json:"thumbnail"`
}

// Client exposes the payment gateway operations the orchestrator needs.
type Client interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*Transaction, error)
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListMethods(ctx context.Context) ([]Method, error)
}

// HTTPClient implements Client against the provider's HTTP API.
type HTTPClient struct {
	baseURL     *url.URL
	accessToken string
	httpClient  *http.Client
	logger      *slog.Logger
}

// transactionResponse mirrors the provider's payment payload.
type transactionResponse struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	StatusDetail       string      `json:"status_detail"`
	PaymentMethodID    string      `json:"payment_method_id"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
			TicketURL    string `json:"ticket_url"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

// NewHTTPClient creates gateway client with a bounded request timeout.
func NewHTTPClient(baseURL, accessToken string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:     parsed,
		accessToken: accessToken,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateTransaction asks the gateway to create a payment transaction.
// Any non-201 answer surfaces as GatewayError carrying the provider body.
func (c *HTTPClient) CreateTransaction(ctx context.Context, txReq TransactionRequest) (*Transaction, error) {
	payload, err := json.Marshal(txReq)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// The provider deduplicates retried creations by this key.
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domainErrors.GatewayError{StatusCode: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		c.logger.Error("gateway create transaction failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, &domainErrors.GatewayError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return decodeTransaction(body)
}

// GetTransaction fetches the current state of a transaction.
func (c *HTTPClient) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path.Join("/v1/payments", id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domainErrors.GatewayError{StatusCode: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return decodeTransaction(body)
	case http.StatusNotFound:
		return nil, ErrTransactionNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway fetch transaction failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, &domainErrors.GatewayError{StatusCode: resp.StatusCode, Body: string(body)}
	}
}

// ListMethods returns every payment method the provider offers.
func (c *HTTPClient) ListMethods(ctx context.Context) ([]Method, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/payment_methods", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domainErrors.GatewayError{StatusCode: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("gateway list methods failed",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, &domainErrors.GatewayError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var methods []Method
	if err := json.Unmarshal(body, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, endpointPath string, body io.Reader) (*http.Request, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	return req, nil
}

func decodeTransaction(body []byte) (*Transaction, error) {
	var data transactionResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &Transaction{
		ID:           data.ID.String(),
		Status:       data.Status,
		StatusDetail: data.StatusDetail,
		MethodID:     data.PaymentMethodID,
		QRCode:       data.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64: data.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:    data.PointOfInteraction.TransactionData.TicketURL,
	}, nil
}
