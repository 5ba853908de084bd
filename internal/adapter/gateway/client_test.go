package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/cianorte/storefront/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(server.URL, "test-token", time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, server
}

func TestNewHTTPClientValidation(t *testing.T) {
	if _, err := NewHTTPClient("://bad", "t", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for malformed url")
	}
	if _, err := NewHTTPClient("relative/path", "t", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for non-absolute url")
	}

	client, err := NewHTTPClient("https://gw.example", "t", 0, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", client.httpClient.Timeout)
	}
}

func TestCreateTransaction(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/payments" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Fatalf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Idempotency-Key") == "" {
			t.Fatal("expected idempotency key")
		}

		var req TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.MethodID != "pix" {
			t.Fatalf("unexpected method %q", req.MethodID)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id": 123456789,
			"status": "pending",
			"status_detail": "pending_waiting_transfer",
			"payment_method_id": "pix",
			"point_of_interaction": {
				"transaction_data": {
					"qr_code": "qr-payload",
					"qr_code_base64": "cXItcGF5bG9hZA==",
					"ticket_url": "https://gw.example/ticket"
				}
			}
		}`))
	})

	tx, err := client.CreateTransaction(context.Background(), TransactionRequest{
		Amount:   decimal.NewFromFloat(149.90),
		MethodID: "pix",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tx.ID != "123456789" {
		t.Fatalf("expected numeric id to become string, got %q", tx.ID)
	}
	if tx.Status != "pending" || tx.QRCode != "qr-payload" || tx.TicketURL != "https://gw.example/ticket" {
		t.Fatalf("unexpected transaction %+v", tx)
	}
}

func TestCreateTransactionRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid card token"}`))
	})

	_, err := client.CreateTransaction(context.Background(), TransactionRequest{})
	ge, ok := domainErrors.IsGatewayError(err)
	if !ok {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if ge.StatusCode != http.StatusBadRequest || ge.Body != `{"message":"invalid card token"}` {
		t.Fatalf("unexpected gateway error %+v", ge)
	}
}

func TestGetTransaction(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/payments/123":
			_, _ = w.Write([]byte(`{"id": 123, "status": "approved", "payment_method_id": "visa"}`))
		case "/v1/payments/404":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("oops"))
		}
	})

	tx, err := client.GetTransaction(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID != "123" || tx.Status != "approved" || tx.MethodID != "visa" {
		t.Fatalf("unexpected transaction %+v", tx)
	}

	if _, err := client.GetTransaction(context.Background(), "404"); err != ErrTransactionNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = client.GetTransaction(context.Background(), "500")
	if ge, ok := domainErrors.IsGatewayError(err); !ok || ge.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestListMethods(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_methods" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id": "pix", "name": "PIX", "payment_type_id": "bank_transfer"},
			{"id": "visa", "name": "Visa", "payment_type_id": "credit_card", "thumbnail": "https://cdn.example/visa.png"}
		]`))
	})

	methods, err := client.ListMethods(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(methods) != 2 || methods[0].ID != "pix" || methods[1].TypeID != "credit_card" {
		t.Fatalf("unexpected methods %v", methods)
	}
}

func TestClientConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client, err := NewHTTPClient(server.URL, "t", time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server.Close()

	_, err = client.ListMethods(context.Background())
	if _, ok := domainErrors.IsGatewayError(err); !ok {
		t.Fatalf("expected gateway error for connection failure, got %v", err)
	}
}
