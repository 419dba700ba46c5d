package services

import (
	"time"

	"storefront/internal/core/domain/model/order"
)

type stageText struct {
	title       string
	description string
}

// timelineStages is the fixed customer-visible stage sequence. pending_payment is implicit
// and cancelled is appended only for cancelled orders.
var timelineStages = []order.Status{
	order.PaymentReceived,
	order.FilesDownloading,
	order.FilesDownloaded,
	order.DevicePrepared,
	order.Shipped,
	order.Delivered,
}

var stageTexts = map[order.Status]stageText{
	order.PaymentReceived:  {"Order Placed", "Your order has been received and payment confirmed."},
	order.FilesDownloading: {"Downloading Files", "We are downloading your files from your cloud storage."},
	order.FilesDownloaded:  {"Files Downloaded", "All files have been successfully downloaded."},
	order.DevicePrepared:   {"Preparing Device", "Your files are being transferred to the storage device."},
	order.Shipped:          {"Shipped", "Your order has been shipped and is on its way."},
	order.Delivered:        {"Delivered", "Your order has been delivered."},
	order.Cancelled:        {"Cancelled", "Your order has been cancelled."},
}

// TimelineSnapshot is everything the projection depends on.
type TimelineSnapshot struct {
	Status order.Status
	// StatusBeforeCancellation is the status a cancelled order held when it was cancelled.
	StatusBeforeCancellation order.Status
	ReachedAt                map[order.Status]time.Time
}

// TimelineEvent is one customer-visible milestone.
type TimelineEvent struct {
	Type        order.Status
	Title       string
	Description string
	OccurredAt  *time.Time
	Completed   bool
}

// TimelineProjector derives the tracking timeline shown to customers.
//
// Business rules:
//   - One entry per stage in fixed order: payment_received, files_downloading,
//     files_downloaded, device_prepared, shipped, delivered
//   - A stage is completed when the order is at or beyond it on the happy path
//   - A cancelled order keeps the stages it completed and replaces the rest
//     with a single cancelled entry
//
// The projector holds no state: identical snapshots give identical timelines.
//
// Example usage:
//
//	projector := services.NewTimelineProjector()
//	events, err := projector.Project(services.SnapshotOf(o, history))
type TimelineProjector struct{}

func NewTimelineProjector() TimelineProjector {
	return TimelineProjector{}
}

// Project builds the timeline for snapshot.
//
// Returns:
//   - []TimelineEvent: the ordered milestones
//   - error: a ValueIsInvalidError when snapshot.Status is not a lifecycle state
func (p TimelineProjector) Project(snapshot TimelineSnapshot) ([]TimelineEvent, error) {
	if err := snapshot.Status.Validate(); err != nil {
		return nil, err
	}

	reached := snapshot.Status
	if snapshot.Status == order.Cancelled {
		reached = snapshot.StatusBeforeCancellation
	}

	events := make([]TimelineEvent, 0, len(timelineStages)+1)
	for _, stage := range timelineStages {
		completed := reached.HasReached(stage)
		if snapshot.Status == order.Cancelled && !completed {
			break
		}
		events = append(events, p.event(stage, completed, snapshot.ReachedAt))
	}

	if snapshot.Status == order.Cancelled {
		events = append(events, p.event(order.Cancelled, true, snapshot.ReachedAt))
	}

	return events, nil
}

func (p TimelineProjector) event(stage order.Status, completed bool, reachedAt map[order.Status]time.Time) TimelineEvent {
	text := stageTexts[stage]
	e := TimelineEvent{
		Type:        stage,
		Title:       text.title,
		Description: text.description,
		Completed:   completed,
	}
	if at, ok := reachedAt[stage]; ok && completed {
		e.OccurredAt = &at
	}
	return e
}

// SnapshotOf builds a projection snapshot from an order and its stored history.
// The order's milestone timestamps take precedence over history instants.
func SnapshotOf(o *order.Order, history []order.StatusChange) TimelineSnapshot {
	snapshot := TimelineSnapshot{
		Status:                   o.Status(),
		StatusBeforeCancellation: order.PendingPayment,
		ReachedAt:                make(map[order.Status]time.Time),
	}

	for _, change := range history {
		if change.From() == change.To() {
			continue
		}
		if _, seen := snapshot.ReachedAt[change.To()]; !seen {
			snapshot.ReachedAt[change.To()] = change.OccurredAt()
		}
		if change.To() == order.Cancelled && change.From().IsOnHappyPath() {
			snapshot.StatusBeforeCancellation = change.From()
		}
	}

	for stage, at := range map[order.Status]*time.Time{
		order.PaymentReceived: o.PaidAt(),
		order.Shipped:         o.ShippedAt(),
		order.Delivered:       o.DeliveredAt(),
		order.Cancelled:       o.CancelledAt(),
	} {
		if at != nil {
			snapshot.ReachedAt[stage] = *at
		}
	}

	return snapshot
}
