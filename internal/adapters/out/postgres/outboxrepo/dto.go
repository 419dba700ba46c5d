// Package outboxrepo stores domain events in the outbox_messages table until the
// relay has delivered them.
package outboxrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxMessageDTO is one stored event. Unpublished rows have a nil PublishedAt.
type OutboxMessageDTO struct {
	ID            int64          `gorm:"primaryKey;autoIncrement"`
	EventID       uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	EventName     string         `gorm:"size:64;not null"`
	AggregateKey  string         `gorm:"size:40;not null"`
	Payload       datatypes.JSON `gorm:"not null"`
	OccurredAt    time.Time      `gorm:"not null"`
	PublishedAt   *time.Time     `gorm:"index"`
	Attempts      int            `gorm:"not null;default:0"`
	LastError     string
	NextAttemptAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(event kernel.DomainEvent) (OutboxMessageDTO, error) {
	payload, err := event.MarshalJSON()
	if err != nil {
		return OutboxMessageDTO{}, err
	}

	occurredAt := event.OccurredAt().UTC()
	return OutboxMessageDTO{
		EventID:       event.EventID().Bytes(),
		EventName:     event.EventName(),
		AggregateKey:  event.AggregateKey(),
		Payload:       datatypes.JSON(payload),
		OccurredAt:    occurredAt,
		NextAttemptAt: occurredAt,
	}, nil
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:           dto.ID,
		EventID:      eventID,
		EventName:    dto.EventName,
		AggregateKey: dto.AggregateKey,
		Payload:      []byte(dto.Payload),
		OccurredAt:   dto.OccurredAt.UTC(),
		Attempts:     dto.Attempts,
	}, nil
}
