package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Checkout holds what the customer submitted when placing an order.
type Checkout struct {
	Customer        Customer
	ShippingAddress Address
	Device          kernel.StorageDevice
	Amount          int64
	AutoDelete      bool
	Files           []File
}

// TransitionFields are the optional values an admin may supply with a status change.
// A nil pointer leaves the stored value untouched.
type TransitionFields struct {
	TrackingNumber *string
	Carrier        *string
	Notes          *string
}

// Snapshot is the complete stored state of an order, used to restore it from persistence.
type Snapshot struct {
	ID              kernel.UUID
	Number          kernel.OrderNumber
	Customer        Customer
	ShippingAddress Address
	Device          kernel.StorageDevice
	Amount          int64
	AutoDelete      bool
	Status          Status
	TrackingNumber  string
	Carrier         string
	Notes           string
	PaymentIntentID string
	Files           []File
	CreatedAt       time.Time
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	Version         int64
}

// Order is the aggregate root of a customer purchase: a storage device pre-loaded
// with the customer's cloud files and mailed to them.
//
// Order follows these invariants:
//   - Status is always one of the eight lifecycle states
//   - Status only changes through Transition, along the allowed-transition graph
//   - Reaching payment_received stamps paidAt, shipped stamps shippedAt and requires
//     tracking number and carrier, delivered stamps deliveredAt, cancelled stamps cancelledAt
//   - createdAt <= paidAt <= shippedAt <= deliveredAt
//   - Every accepted change appends one StatusChange and raises one StatusChangedEvent
//   - A rejected change leaves the aggregate exactly as it was
//
// The version counter backs optimistic concurrency in the repository: it is
// read with the order and must still match when the order is written back.
type Order struct {
	id     kernel.UUID
	number kernel.OrderNumber

	customer        Customer
	shippingAddress Address
	device          kernel.StorageDevice
	amount          int64
	autoDelete      bool
	files           []File

	status          Status
	trackingNumber  string
	carrier         string
	notes           string
	paymentIntentID string

	createdAt   time.Time
	paidAt      *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	version int64

	// uncommittedHistory holds entries not yet written by the repository.
	uncommittedHistory []StatusChange
	domainEvents       []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder places a new order in pending_payment status.
//
// Parameters:
//   - id: internal identifier (must be valid)
//   - number: public order number (must be valid)
//   - checkout: customer, shipping address, device, amount, auto-delete flag and files
//   - createdAt: creation instant
//
// Returns:
//   - *Order: the created order with its "created" history entry pending
//   - error: all validation failures joined together
//
// Example:
//
//	number, _ := kernel.GenerateOrderNumber("NCS", time.Now())
//	o, err := order.NewOrder(kernel.NewUUID(), number, checkout, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, number kernel.OrderNumber, checkout Checkout, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:     PendingPayment,
		autoDelete: checkout.AutoDelete,
		version:    1,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(checkout.Customer),
		o.setShippingAddress(checkout.ShippingAddress),
		o.setDevice(checkout.Device),
		o.setAmount(checkout.Amount),
		o.setFiles(checkout.Files),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.record(Unknown, PendingPayment, o.createdAt)
	return o, nil
}

// RestoreOrder rebuilds an order from persistence and checks that status,
// timestamps and tracking fields are mutually consistent.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		autoDelete:      s.AutoDelete,
		status:          s.Status,
		trackingNumber:  s.TrackingNumber,
		carrier:         s.Carrier,
		notes:           s.Notes,
		paymentIntentID: s.PaymentIntentID,
		paidAt:          normalizeTimePtr(s.PaidAt),
		shippedAt:       normalizeTimePtr(s.ShippedAt),
		deliveredAt:     normalizeTimePtr(s.DeliveredAt),
		cancelledAt:     normalizeTimePtr(s.CancelledAt),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setCustomer(s.Customer),
		o.setShippingAddress(s.ShippingAddress),
		o.setDevice(s.Device),
		o.setAmount(s.Amount),
		o.setFiles(s.Files),
		o.setCreatedAt(s.CreatedAt),
		o.setVersion(s.Version),
	); err != nil {
		return nil, err
	}

	if err := o.checkConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() kernel.OrderNumber   { return o.number }
func (o *Order) Customer() Customer           { return o.customer }
func (o *Order) ShippingAddress() Address     { return o.shippingAddress }
func (o *Order) Device() kernel.StorageDevice { return o.device }
func (o *Order) Amount() int64                { return o.amount }
func (o *Order) AutoDelete() bool             { return o.autoDelete }
func (o *Order) Status() Status               { return o.status }
func (o *Order) TrackingNumber() string       { return o.trackingNumber }
func (o *Order) Carrier() string              { return o.carrier }
func (o *Order) Notes() string                { return o.notes }
func (o *Order) PaymentIntentID() string      { return o.paymentIntentID }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) PaidAt() *time.Time           { return copyTime(o.paidAt) }
func (o *Order) ShippedAt() *time.Time        { return copyTime(o.shippedAt) }
func (o *Order) DeliveredAt() *time.Time      { return copyTime(o.deliveredAt) }
func (o *Order) CancelledAt() *time.Time      { return copyTime(o.cancelledAt) }
func (o *Order) Version() int64               { return o.version }

// Files returns a copy of the selected files.
func (o *Order) Files() []File {
	out := make([]File, len(o.files))
	copy(out, o.files)
	return out
}

// FileCount returns the number of selected files.
func (o *Order) FileCount() int {
	return len(o.files)
}

// TotalSizeBytes returns the combined size of the selected files.
func (o *Order) TotalSizeBytes() int64 {
	var total int64
	for _, f := range o.files {
		total += f.sizeBytes
	}
	return total
}

// AttachPaymentIntent stores the payment collaborator's intent id. Only allowed
// while the order awaits payment.
func (o *Order) AttachPaymentIntent(intentID string) error {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return errs.NewValueIsRequiredError("payment intent id")
	}
	if o.status != PendingPayment {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to attach a payment intent", o.status),
		)
	}

	o.paymentIntentID = intentID
	return nil
}

// ConfirmPayment applies the payment collaborator's confirmation.
//
// The intent id must match the one attached at checkout. Confirmations that arrive
// after the order already moved past pending_payment are accepted as no-ops, so
// webhook retries are harmless; a cancelled order rejects them.
//
// Returns whether the order changed.
func (o *Order) ConfirmPayment(intentID string, now time.Time) (bool, error) {
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return false, errs.NewValueIsRequiredError("payment intent id")
	}
	if o.paymentIntentID != "" && o.paymentIntentID != intentID {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"payment intent id",
			errors.New("does not match the order's payment intent"),
		)
	}
	if o.status.HasReached(PaymentReceived) {
		return false, nil
	}

	return o.Transition(PaymentReceived, TransitionFields{}, now)
}

// Transition moves the order to target, merging the supplied fields.
//
// This method enforces the following business rules:
//   - target must be a valid status, reachable from the current one in a single move
//   - moving to shipped requires a non-empty tracking number and carrier in fields
//   - re-submitting the current status is a no-op unless a supplied field changes a stored value;
//     then the fields are merged and a history entry with From == To is recorded
//   - milestone timestamps are stamped once, never before an earlier milestone
//
// Parameters:
//   - target: requested status
//   - fields: optional tracking number, carrier and notes
//   - now: the instant of the change
//
// Returns:
//   - bool: whether the order changed (false for a true no-op)
//   - error: ValueIsInvalid/ValueIsRequired errors for bad input,
//     StatusTransitionIsInvalidError for graph violations
//
// Example:
//
//	tracking, carrier := "1Z999", "UPS"
//	changed, err := o.Transition(order.Shipped, order.TransitionFields{
//	    TrackingNumber: &tracking,
//	    Carrier:        &carrier,
//	}, time.Now())
//
// On error the order is left untouched.
func (o *Order) Transition(target Status, fields TransitionFields, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := target.Validate(); err != nil {
		return false, err
	}

	if target != o.status {
		if err := o.status.ValidateTransition(target); err != nil {
			return false, err
		}
		if target == Shipped {
			if err := fields.requireShipment(); err != nil {
				return false, err
			}
		}
	}

	next := *o
	next.mergeFields(fields)
	if target == o.status && !next.fieldsDiffer(o) {
		return false, nil
	}

	at := o.notBeforeLastMilestone(normalizeTime(now))
	next.status = target
	next.stampMilestone(target, at)
	next.applyFileProgress(target)

	if err := next.checkConsistency(); err != nil {
		return false, err
	}

	next.record(o.status, target, at)
	*o = next
	return true, nil
}

// UncommittedHistory returns the history entries recorded since the order was loaded.
func (o *Order) UncommittedHistory() []StatusChange {
	out := make([]StatusChange, len(o.uncommittedHistory))
	copy(out, o.uncommittedHistory)
	return out
}

// ClearUncommittedHistory is called by the repository once the entries are written.
func (o *Order) ClearUncommittedHistory() {
	o.uncommittedHistory = nil
}

// DomainEvents returns the events raised since the order was loaded.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(o.domainEvents))
	copy(out, o.domainEvents)
	return out
}

// ClearDomainEvents is called by the unit of work once the events are stored in the outbox.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

// IncrementVersion is called by the repository after a successful conditional write.
func (o *Order) IncrementVersion() {
	o.version++
}

func (f TransitionFields) requireShipment() error {
	var errTracking, errCarrier error
	if f.TrackingNumber == nil || strings.TrimSpace(*f.TrackingNumber) == "" {
		errTracking = errs.NewValueIsRequiredError("tracking number")
	}
	if f.Carrier == nil || strings.TrimSpace(*f.Carrier) == "" {
		errCarrier = errs.NewValueIsRequiredError("carrier")
	}
	return errors.Join(errTracking, errCarrier)
}

func (o *Order) mergeFields(f TransitionFields) {
	if f.TrackingNumber != nil {
		o.trackingNumber = strings.TrimSpace(*f.TrackingNumber)
	}
	if f.Carrier != nil {
		o.carrier = strings.TrimSpace(*f.Carrier)
	}
	if f.Notes != nil {
		o.notes = strings.TrimSpace(*f.Notes)
	}
}

func (o *Order) fieldsDiffer(other *Order) bool {
	return o.trackingNumber != other.trackingNumber ||
		o.carrier != other.carrier ||
		o.notes != other.notes
}

func (o *Order) stampMilestone(target Status, at time.Time) {
	stamp := func(field **time.Time) {
		if *field == nil {
			t := at
			*field = &t
		}
	}

	//nolint:exhaustive // only milestone states carry a timestamp
	switch target {
	case PaymentReceived:
		stamp(&o.paidAt)
	case Shipped:
		stamp(&o.shippedAt)
	case Delivered:
		stamp(&o.deliveredAt)
	case Cancelled:
		stamp(&o.cancelledAt)
	}
}

func (o *Order) applyFileProgress(target Status) {
	var from, to DownloadStatus
	//nolint:exhaustive // files only move while they are being copied
	switch target {
	case FilesDownloading:
		from, to = DownloadPending, DownloadInProgress
	case FilesDownloaded:
		from, to = DownloadInProgress, DownloadCompleted
	default:
		return
	}

	files := make([]File, len(o.files))
	for i, f := range o.files {
		if f.downloadStatus == from || (to == DownloadCompleted && f.downloadStatus == DownloadPending) {
			f = f.withStatus(to)
		}
		files[i] = f
	}
	o.files = files
}

// notBeforeLastMilestone keeps timestamps monotonic if the clock moved backwards.
func (o *Order) notBeforeLastMilestone(at time.Time) time.Time {
	latest := o.createdAt
	for _, t := range []*time.Time{o.paidAt, o.shippedAt, o.deliveredAt, o.cancelledAt} {
		if t != nil && t.After(latest) {
			latest = *t
		}
	}
	if at.Before(latest) {
		return latest
	}
	return at
}

func (o *Order) record(from, to Status, at time.Time) {
	change := StatusChange{
		id:             kernel.NewUUID(),
		orderNumber:    o.number,
		from:           from,
		to:             to,
		trackingNumber: o.trackingNumber,
		carrier:        o.carrier,
		notes:          o.notes,
		occurredAt:     at,
	}

	o.uncommittedHistory = append(o.uncommittedHistory, change)
	o.domainEvents = append(o.domainEvents, StatusChangedEvent{
		change:        change,
		customerName:  o.customer.name,
		customerEmail: o.customer.email,
	})
}

// checkConsistency verifies that status, milestone timestamps and tracking fields agree.
func (o *Order) checkConsistency() error {
	if err := o.status.Validate(); err != nil {
		return err
	}

	var problems []error
	requireTime := func(name string, t *time.Time) {
		if t == nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
				name, fmt.Errorf("%s status requires it", o.status)))
		}
	}

	if o.status.HasReached(PaymentReceived) {
		requireTime("paid at", o.paidAt)
	}
	if o.status.HasReached(Shipped) {
		requireTime("shipped at", o.shippedAt)
		if o.trackingNumber == "" {
			problems = append(problems, errs.NewValueIsRequiredError("tracking number"))
		}
		if o.carrier == "" {
			problems = append(problems, errs.NewValueIsRequiredError("carrier"))
		}
	}
	if o.status == Delivered {
		requireTime("delivered at", o.deliveredAt)
	}
	if o.status == Cancelled {
		requireTime("cancelled at", o.cancelledAt)
	}

	previous, previousName := o.createdAt, "created at"
	for _, m := range []struct {
		name string
		at   *time.Time
	}{
		{"paid at", o.paidAt},
		{"shipped at", o.shippedAt},
		{"delivered at", o.deliveredAt},
	} {
		if m.at == nil {
			continue
		}
		if m.at.Before(previous) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				m.name, fmt.Errorf("%s is before %s", m.name, previousName)))
		}
		previous, previousName = *m.at, m.name
	}

	return errors.Join(problems...)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setShippingAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setDevice(device kernel.StorageDevice) error {
	if err := device.Validate(); err != nil {
		return err
	}
	o.device = device
	return nil
}

// setAmount requires a positive amount in minor currency units.
func (o *Order) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	o.amount = amount
	return nil
}

func (o *Order) setFiles(files []File) error {
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f.id == "" {
			return errs.NewValueIsRequiredError("file id")
		}
		if _, dup := seen[f.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("files", fmt.Errorf("file %q is selected twice", f.id))
		}
		seen[f.id] = struct{}{}
	}

	o.files = make([]File, len(files))
	copy(o.files, files)
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = normalizeTime(createdAt)
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}

// normalizeTime drops the monotonic clock and sub-microsecond precision so that
// instants survive a round trip through the database unchanged.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func normalizeTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := normalizeTime(*t)
	return &n
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
