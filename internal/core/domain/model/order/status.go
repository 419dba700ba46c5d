package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// The happy path is linear and each step may only advance to the next one:
//
//	pending_payment ─> payment_received ─> files_downloading ─> files_downloaded
//	    ─> device_prepared ─> shipped ─> delivered*
//
// cancelled* is reachable from every non-terminal state. States marked * are terminal.
// Re-entering the current state is not a move and is handled by Order.Transition.
type Status int

const (
	// Unknown catches uninitialized values and marks the "from" side of the creation history entry.
	Unknown Status = iota
	PendingPayment
	PaymentReceived
	FilesDownloading
	FilesDownloaded
	DevicePrepared
	Shipped
	Delivered
	Cancelled
)

// transitions is the adjacency table of the lifecycle graph: current state -> allowed next states.
var transitions = map[Status][]Status{
	PendingPayment:   {PaymentReceived, Cancelled},
	PaymentReceived:  {FilesDownloading, Cancelled},
	FilesDownloading: {FilesDownloaded, Cancelled},
	FilesDownloaded:  {DevicePrepared, Cancelled},
	DevicePrepared:   {Shipped, Cancelled},
	Shipped:          {Delivered, Cancelled},
	Delivered:        {},
	Cancelled:        {},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		PendingPayment:   "pending_payment",
		PaymentReceived:  "payment_received",
		FilesDownloading: "files_downloading",
		FilesDownloaded:  "files_downloaded",
		DevicePrepared:   "device_prepared",
		Shipped:          "shipped",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// Statuses returns all valid statuses in lifecycle order, cancelled last.
func Statuses() []Status {
	return []Status{
		PendingPayment,
		PaymentReceived,
		FilesDownloading,
		FilesDownloaded,
		DevicePrepared,
		Shipped,
		Delivered,
		Cancelled,
	}
}

// ParseStatus converts the wire/storage name of a status ("shipped") into a Status.
// Unknown names are reported as a ValueIsInvalidError.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the eight lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the snake_case name used on the wire and in storage.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further moves are possible from s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// IsOnHappyPath reports whether s belongs to the linear fulfillment sequence.
func (s Status) IsOnHappyPath() bool {
	return s >= PendingPayment && s <= Delivered
}

// HasReached reports whether s is at or beyond stage on the happy path.
// A cancelled order has reached nothing; callers look at the status held before cancellation.
func (s Status) HasReached(stage Status) bool {
	return s.IsOnHappyPath() && stage.IsOnHappyPath() && s >= stage
}

// AllowedTransitions returns a copy of the states reachable from s in one move.
func (s Status) AllowedTransitions() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is reachable from s in one move.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns a StatusTransitionIsInvalidError naming both states
// when target is not reachable from s in one move.
//
// Example:
//
//	err := order.Shipped.ValidateTransition(order.FilesDownloading)
//	// err.Error() == "status transition is invalid: cannot change status from shipped to files_downloading"
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewStatusTransitionIsInvalidError(s, target)
	}
	return nil
}
