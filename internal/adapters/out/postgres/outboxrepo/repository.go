package outboxrepo

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxErrorLength caps the stored delivery error.
const maxErrorLength = 1000

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append stores events in the given order. The first attempt is due at the
// event's occurrence time.
func (r *GormOutboxRepository) Append(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromEvent(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchDue locks and returns unpublished messages that are due, in id order. A message
// waits while an earlier unpublished message of the same aggregate is backing off, so
// one aggregate's events never overtake each other. Rows locked by a concurrent relay
// are skipped.
func (r *GormOutboxRepository) FetchDue(ctx context.Context, now time.Time, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("published_at IS NULL AND next_attempt_at <= ?", now.UTC()).
		Where("NOT EXISTS (?)", r.db.
			Table("outbox_messages AS earlier").
			Select("1").
			Where("earlier.aggregate_key = outbox_messages.aggregate_key").
			Where("earlier.id < outbox_messages.id").
			Where("earlier.published_at IS NULL AND earlier.next_attempt_at > ?", now.UTC())).
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// MarkPublished records a successful delivery.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	at = at.UTC()
	return r.update(ctx, id, map[string]any{
		"published_at": &at,
		"last_error":   "",
	})
}

// MarkFailed records a failed attempt and schedules the next one.
func (r *GormOutboxRepository) MarkFailed(
	ctx context.Context,
	id int64,
	attempts int,
	nextAttemptAt time.Time,
	reason string,
) error {
	if len(reason) > maxErrorLength {
		reason = reason[:maxErrorLength]
	}

	return r.update(ctx, id, map[string]any{
		"attempts":        attempts,
		"next_attempt_at": nextAttemptAt.UTC(),
		"last_error":      reason,
	})
}

func (r *GormOutboxRepository) update(ctx context.Context, id int64, columns map[string]any) error {
	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id)
	}
	return nil
}
