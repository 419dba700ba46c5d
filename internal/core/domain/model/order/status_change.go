package order

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

const (
	EventNameOrderCreated       = "order.created"
	EventNameOrderStatusChanged = "order.status_changed"
)

// StatusChange is one entry of the append-only order history. The creation entry
// has From == Unknown. A re-submission of the current status that changed
// tracking, carrier or notes is recorded with From == To.
type StatusChange struct {
	id             kernel.UUID
	orderNumber    kernel.OrderNumber
	from           Status
	to             Status
	trackingNumber string
	carrier        string
	notes          string
	occurredAt     time.Time
}

// RestoreStatusChange rebuilds a stored history entry.
func RestoreStatusChange(
	id kernel.UUID,
	orderNumber kernel.OrderNumber,
	from, to Status,
	trackingNumber, carrier, notes string,
	occurredAt time.Time,
) (StatusChange, error) {
	if err := id.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := orderNumber.Validate(); err != nil {
		return StatusChange{}, err
	}
	if from != Unknown {
		if err := from.Validate(); err != nil {
			return StatusChange{}, err
		}
	}
	if err := to.Validate(); err != nil {
		return StatusChange{}, err
	}

	return StatusChange{
		id:             id,
		orderNumber:    orderNumber,
		from:           from,
		to:             to,
		trackingNumber: trackingNumber,
		carrier:        carrier,
		notes:          notes,
		occurredAt:     occurredAt,
	}, nil
}

func (c StatusChange) ID() kernel.UUID                 { return c.id }
func (c StatusChange) OrderNumber() kernel.OrderNumber { return c.orderNumber }
func (c StatusChange) From() Status                    { return c.from }
func (c StatusChange) To() Status                      { return c.to }
func (c StatusChange) TrackingNumber() string          { return c.trackingNumber }
func (c StatusChange) Carrier() string                 { return c.carrier }
func (c StatusChange) Notes() string                   { return c.notes }
func (c StatusChange) OccurredAt() time.Time           { return c.occurredAt }

// IsCreation reports whether the entry records the order being placed.
func (c StatusChange) IsCreation() bool {
	return c.from == Unknown
}

// StatusChangedEvent is raised for every history entry. It carries the customer
// contact so that the notification consumer can email without reading the order back.
type StatusChangedEvent struct {
	change        StatusChange
	customerName  string
	customerEmail string
}

var _ kernel.DomainEvent = StatusChangedEvent{}

func (e StatusChangedEvent) EventID() kernel.UUID { return e.change.id }

func (e StatusChangedEvent) EventName() string {
	if e.change.IsCreation() {
		return EventNameOrderCreated
	}
	return EventNameOrderStatusChanged
}

func (e StatusChangedEvent) AggregateKey() string  { return e.change.orderNumber.String() }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.change.occurredAt }
func (e StatusChangedEvent) Change() StatusChange  { return e.change }

type statusChangedPayload struct {
	EventID        string    `json:"eventId"`
	EventName      string    `json:"eventName"`
	OrderNumber    string    `json:"orderNumber"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	Carrier        string    `json:"carrier,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// MarshalJSON renders the integration payload published to the notification topic.
func (e StatusChangedEvent) MarshalJSON() ([]byte, error) {
	payload := statusChangedPayload{
		EventID:        e.change.id.String(),
		EventName:      e.EventName(),
		OrderNumber:    e.change.orderNumber.String(),
		Status:         e.change.to.String(),
		TrackingNumber: e.change.trackingNumber,
		Carrier:        e.change.carrier,
		Notes:          e.change.notes,
		CustomerName:   e.customerName,
		CustomerEmail:  e.customerEmail,
		OccurredAt:     e.change.occurredAt.UTC(),
	}
	if !e.change.IsCreation() {
		payload.PreviousStatus = e.change.from.String()
	}
	return json.Marshal(payload)
}
