package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderLine struct {
	FoodID string  `json:"food_id"`
	Unit   int     `json:"unit"`
	Price  float64 `json:"price"`
}

type OrderCreatedPayload struct {
	OrderID     string      `json:"order_id"`
	CustomerID  string      `json:"customer_id"`
	VendorID    string      `json:"vendor_id"`
	Items       []OrderLine `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	PaidThrough string      `json:"paid_through"`
}

type OrderStatusChangedPayload struct {
	OrderID   string `json:"order_id"`
	VendorID  string `json:"vendor_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Remarks   string `json:"remarks,omitempty"`
	ReadyTime int    `json:"ready_time"`
}

// NewEnvelope wraps payload in a version 1 envelope.
func NewEnvelope(producer, eventType, correlationID string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}
