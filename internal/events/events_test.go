package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewEnvelope(t *testing.T) {
	payload := OrderCreatedPayload{
		OrderID: 42,
		UserID:  7,
		Total:   decimal.NewFromFloat(149.90),
		Items:   3,
	}

	env, err := NewEnvelope(TypeOrderCreated, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.EventID == "" {
		t.Fatal("expected event id")
	}
	if env.EventType != TypeOrderCreated {
		t.Fatalf("unexpected event type %q", env.EventType)
	}
	if env.Producer != producerName {
		t.Fatalf("unexpected producer %q", env.Producer)
	}
	if env.OccurredAt.IsZero() || env.OccurredAt.Location() != time.UTC {
		t.Fatalf("unexpected occurred_at %v", env.OccurredAt)
	}

	var decoded OrderCreatedPayload
	if err := json.Unmarshal(env.Payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.OrderID != 42 || decoded.Items != 3 || !decoded.Total.Equal(payload.Total) {
		t.Fatalf("unexpected payload %+v", decoded)
	}
}

func TestNewEnvelopeUniqueIDs(t *testing.T) {
	first, err := NewEnvelope(TypePaymentInitiated, PaymentStatusPayload{PaymentID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewEnvelope(TypePaymentInitiated, PaymentStatusPayload{PaymentID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.EventID == second.EventID {
		t.Fatal("expected distinct event ids")
	}
}

func TestNewEnvelopeMarshalFailure(t *testing.T) {
	if _, err := NewEnvelope(TypeOrderCreated, func() {}); err == nil {
		t.Fatal("expected error for unmarshalable payload")
	}
}

func TestNopPublisher(t *testing.T) {
	var pub NopPublisher
	env, err := NewEnvelope(TypePaymentStatusChanged, PaymentStatusPayload{PaymentID: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pub.Publish(TopicPayments, 9, env)
	if err := pub.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
