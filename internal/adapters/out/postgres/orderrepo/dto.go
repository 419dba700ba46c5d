// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number carries a unique index so a generated number is never reused.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber     string     `gorm:"size:40;uniqueIndex"`
	CustomerName    string     `gorm:"size:200"`
	CustomerEmail   string     `gorm:"size:320"`
	ShippingAddress AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	StorageType     string     `gorm:"size:20"`
	StorageSizeGB   int
	Amount          int64
	AutoDelete      bool
	Status          string `gorm:"size:32;index"`
	TrackingNumber  string `gorm:"size:100"`
	Carrier         string `gorm:"size:100"`
	Notes           string
	PaymentIntentID string `gorm:"size:100"`
	Files           datatypes.JSON
	CreatedAt       time.Time `gorm:"autoCreateTime:false;index"`
	PaidAt          *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	Version         int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the shipping address embedded in the order row.
type AddressDTO struct {
	Line1      string `gorm:"size:200"`
	Line2      string `gorm:"size:200"`
	City       string `gorm:"size:100"`
	State      string `gorm:"size:100"`
	PostalCode string `gorm:"size:20"`
	Country    string `gorm:"size:60"`
}

// FileDTO is one element of the files JSON column.
type FileDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SizeBytes      int64  `json:"sizeBytes"`
	DownloadStatus string `json:"downloadStatus"`
}

// StatusChangeDTO is one row of the append-only status history. Seq breaks ties
// between entries with the same occurrence instant.
type StatusChangeDTO struct {
	Seq            int64     `gorm:"primaryKey;autoIncrement"`
	ChangeID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	OrderNumber    string    `gorm:"size:40;index"`
	FromStatus     string    `gorm:"size:32"`
	ToStatus       string    `gorm:"size:32"`
	TrackingNumber string    `gorm:"size:100"`
	Carrier        string    `gorm:"size:100"`
	Notes          string
	OccurredAt     time.Time
}

// TableName specifies the database table name for history entries.
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	files, err := filesToJSON(aggregate.Files())
	if err != nil {
		return OrderDTO{}, err
	}

	address := aggregate.ShippingAddress()
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.Number().String(),
		CustomerName:  aggregate.Customer().Name(),
		CustomerEmail: aggregate.Customer().Email(),
		ShippingAddress: AddressDTO{
			Line1:      address.Line1(),
			Line2:      address.Line2(),
			City:       address.City(),
			State:      address.State(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
		},
		StorageType:     aggregate.Device().Type().String(),
		StorageSizeGB:   int(aggregate.Device().Size()),
		Amount:          aggregate.Amount(),
		AutoDelete:      aggregate.AutoDelete(),
		Status:          aggregate.Status().String(),
		TrackingNumber:  aggregate.TrackingNumber(),
		Carrier:         aggregate.Carrier(),
		Notes:           aggregate.Notes(),
		PaymentIntentID: aggregate.PaymentIntentID(),
		Files:           files,
		CreatedAt:       aggregate.CreatedAt(),
		PaidAt:          aggregate.PaidAt(),
		ShippedAt:       aggregate.ShippedAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
		CancelledAt:     aggregate.CancelledAt(),
		Version:         aggregate.Version(),
	}, nil
}

// mutableColumns lists what a status change may rewrite. Identity, customer input and
// createdAt never change after creation.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":            dto.Status,
		"tracking_number":   dto.TrackingNumber,
		"carrier":           dto.Carrier,
		"notes":             dto.Notes,
		"payment_intent_id": dto.PaymentIntentID,
		"files":             dto.Files,
		"paid_at":           dto.PaidAt,
		"shipped_at":        dto.ShippedAt,
		"delivered_at":      dto.DeliveredAt,
		"cancelled_at":      dto.CancelledAt,
		"version":           dto.Version + 1,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.ParseOrderNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerEmail)
	if err != nil {
		return nil, err
	}

	a := dto.ShippingAddress
	address, err := order.NewAddress(a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country)
	if err != nil {
		return nil, err
	}

	device, err := kernel.NewStorageDevice(kernel.StorageType(dto.StorageType), kernel.StorageSize(dto.StorageSizeGB))
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	files, err := filesFromJSON(dto.Files)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          number,
		Customer:        customer,
		ShippingAddress: address,
		Device:          device,
		Amount:          dto.Amount,
		AutoDelete:      dto.AutoDelete,
		Status:          status,
		TrackingNumber:  dto.TrackingNumber,
		Carrier:         dto.Carrier,
		Notes:           dto.Notes,
		PaymentIntentID: dto.PaymentIntentID,
		Files:           files,
		CreatedAt:       dto.CreatedAt,
		PaidAt:          dto.PaidAt,
		ShippedAt:       dto.ShippedAt,
		DeliveredAt:     dto.DeliveredAt,
		CancelledAt:     dto.CancelledAt,
		Version:         dto.Version,
	})
}

func filesToJSON(files []order.File) (datatypes.JSON, error) {
	dtos := make([]FileDTO, 0, len(files))
	for _, f := range files {
		dtos = append(dtos, FileDTO{
			ID:             f.ID(),
			Name:           f.Name(),
			SizeBytes:      f.SizeBytes(),
			DownloadStatus: string(f.DownloadStatus()),
		})
	}

	raw, err := json.Marshal(dtos)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func filesFromJSON(raw datatypes.JSON) ([]order.File, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []FileDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	files := make([]order.File, 0, len(dtos))
	for _, dto := range dtos {
		f, err := order.RestoreFile(dto.ID, dto.Name, dto.SizeBytes, order.DownloadStatus(dto.DownloadStatus))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// changeFromDomain converts a history entry. The creation entry has an empty from status.
func changeFromDomain(change order.StatusChange) StatusChangeDTO {
	from := ""
	if !change.IsCreation() {
		from = change.From().String()
	}

	return StatusChangeDTO{
		ChangeID:       change.ID().Bytes(),
		OrderNumber:    change.OrderNumber().String(),
		FromStatus:     from,
		ToStatus:       change.To().String(),
		TrackingNumber: change.TrackingNumber(),
		Carrier:        change.Carrier(),
		Notes:          change.Notes(),
		OccurredAt:     change.OccurredAt(),
	}
}

func changeToDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ChangeID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	number, err := kernel.ParseOrderNumber(dto.OrderNumber)
	if err != nil {
		return order.StatusChange{}, err
	}

	from := order.Unknown
	if dto.FromStatus != "" {
		if from, err = order.ParseStatus(dto.FromStatus); err != nil {
			return order.StatusChange{}, err
		}
	}

	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.RestoreStatusChange(id, number, from, to, dto.TrackingNumber, dto.Carrier, dto.Notes, dto.OccurredAt.UTC())
}
