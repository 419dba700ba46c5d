// Package queries contains read operations. Queries never modify state: order
// lookups go through ports.OrderReader, list and inventory views read the
// database directly.
package queries

import (
	"time"

	"storefront/internal/core/domain/model/order"
)

// OrderSummary is the public view of an order. It never carries the internal identifier.
type OrderSummary struct {
	OrderNumber    string
	CustomerName   string
	CustomerEmail  string
	StorageType    string
	StorageSizeGB  int
	Amount         int64
	Status         string
	TrackingNumber string
	Carrier        string
	FileCount      int
	TotalSizeBytes int64
	CreatedAt      time.Time
	PaidAt         *time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// FileView is one selected cloud file as shown to admins.
type FileView struct {
	ID             string
	Name           string
	SizeBytes      int64
	DownloadStatus string
}

// AddressView is the shipping address as shown to admins.
type AddressView struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// OrderDetails is the admin view of an order.
type OrderDetails struct {
	OrderSummary
	ShippingAddress AddressView
	AutoDelete      bool
	Notes           string
	PaymentIntentID string
	Files           []FileView
	Version         int64
}

// StatusChangeView is one history entry. From is empty for the creation entry.
type StatusChangeView struct {
	From           string
	To             string
	TrackingNumber string
	Carrier        string
	Notes          string
	OccurredAt     time.Time
}

// SummaryOf renders the public view of an order.
func SummaryOf(o *order.Order) OrderSummary {
	return OrderSummary{
		OrderNumber:    o.Number().String(),
		CustomerName:   o.Customer().Name(),
		CustomerEmail:  o.Customer().Email(),
		StorageType:    o.Device().Type().String(),
		StorageSizeGB:  int(o.Device().Size()),
		Amount:         o.Amount(),
		Status:         o.Status().String(),
		TrackingNumber: o.TrackingNumber(),
		Carrier:        o.Carrier(),
		FileCount:      o.FileCount(),
		TotalSizeBytes: o.TotalSizeBytes(),
		CreatedAt:      o.CreatedAt(),
		PaidAt:         o.PaidAt(),
		ShippedAt:      o.ShippedAt(),
		DeliveredAt:    o.DeliveredAt(),
		CancelledAt:    o.CancelledAt(),
	}
}

func detailsOf(o *order.Order) OrderDetails {
	a := o.ShippingAddress()
	files := make([]FileView, 0, o.FileCount())
	for _, f := range o.Files() {
		files = append(files, FileView{
			ID:             f.ID(),
			Name:           f.Name(),
			SizeBytes:      f.SizeBytes(),
			DownloadStatus: string(f.DownloadStatus()),
		})
	}

	return OrderDetails{
		OrderSummary: SummaryOf(o),
		ShippingAddress: AddressView{
			Line1:      a.Line1(),
			Line2:      a.Line2(),
			City:       a.City(),
			State:      a.State(),
			PostalCode: a.PostalCode(),
			Country:    a.Country(),
		},
		AutoDelete:      o.AutoDelete(),
		Notes:           o.Notes(),
		PaymentIntentID: o.PaymentIntentID(),
		Files:           files,
		Version:         o.Version(),
	}
}

func changeViewOf(c order.StatusChange) StatusChangeView {
	from := ""
	if !c.IsCreation() {
		from = c.From().String()
	}

	return StatusChangeView{
		From:           from,
		To:             c.To().String(),
		TrackingNumber: c.TrackingNumber(),
		Carrier:        c.Carrier(),
		Notes:          c.Notes(),
		OccurredAt:     c.OccurredAt(),
	}
}
