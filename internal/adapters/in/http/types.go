package http

import (
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/services"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type NewFile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
}

type NewOrder struct {
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	ShippingAddress Address   `json:"shippingAddress"`
	StorageType     string    `json:"storageType"`
	StorageSizeGB   int       `json:"storageSizeGB"`
	Amount          int64     `json:"amount"`
	AutoDelete      bool      `json:"autoDelete"`
	Files           []NewFile `json:"files"`
}

type CreatedOrder struct {
	OrderNumber  string `json:"orderNumber"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	ClientSecret string `json:"clientSecret"`
}

type Order struct {
	OrderNumber    string     `json:"orderNumber"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `json:"customerEmail"`
	StorageType    string     `json:"storageType"`
	StorageSizeGB  int        `json:"storageSizeGB"`
	Amount         int64      `json:"amount"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`
	FileCount      int        `json:"fileCount"`
	TotalSizeBytes int64      `json:"totalSizeBytes"`
	CreatedAt      time.Time  `json:"createdAt"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
}

type TimelineEvent struct {
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Completed   bool       `json:"completed"`
}

type Timeline struct {
	Order  Order           `json:"order"`
	Events []TimelineEvent `json:"events"`
}

type PaymentConfirmation struct {
	OrderNumber     string `json:"orderNumber"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type OrderListItem struct {
	OrderNumber   string    `json:"orderNumber"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	StorageType   string    `json:"storageType"`
	StorageSizeGB int       `json:"storageSizeGB"`
	Amount        int64     `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type OrderPage struct {
	Orders   []OrderListItem `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

type File struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SizeBytes      int64  `json:"sizeBytes"`
	DownloadStatus string `json:"downloadStatus"`
}

type StatusChange struct {
	From           string    `json:"from"`
	To             string    `json:"to"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	Carrier        string    `json:"carrier,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type AdminOrder struct {
	Order
	ShippingAddress Address        `json:"shippingAddress"`
	AutoDelete      bool           `json:"autoDelete"`
	Notes           string         `json:"notes,omitempty"`
	PaymentIntentID string         `json:"paymentIntentId,omitempty"`
	Version         int64          `json:"version"`
	Files           []File         `json:"files"`
	History         []StatusChange `json:"history"`
}

type OrderUpdate struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
	Carrier        *string `json:"carrier"`
	Notes          *string `json:"notes"`
}

type InventoryItem struct {
	ID                string `json:"id"`
	StorageType       string `json:"storageType"`
	SizeGB            int    `json:"sizeGB"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	IsLowStock        bool   `json:"isLowStock"`
}

type InventoryUpdate struct {
	Quantity          *int `json:"quantity"`
	LowStockThreshold *int `json:"lowStockThreshold"`
}

func (o NewOrder) params() commands.CreateOrderParams {
	files := make([]commands.FileParams, 0, len(o.Files))
	for _, f := range o.Files {
		files = append(files, commands.FileParams{ID: f.ID, Name: f.Name, SizeBytes: f.SizeBytes})
	}

	return commands.CreateOrderParams{
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		AddressLine1:  o.ShippingAddress.Line1,
		AddressLine2:  o.ShippingAddress.Line2,
		City:          o.ShippingAddress.City,
		State:         o.ShippingAddress.State,
		PostalCode:    o.ShippingAddress.PostalCode,
		Country:       o.ShippingAddress.Country,
		StorageType:   o.StorageType,
		StorageSizeGB: o.StorageSizeGB,
		Amount:        o.Amount,
		AutoDelete:    o.AutoDelete,
		Files:         files,
	}
}

func orderFromSummary(s queries.OrderSummary) Order {
	return Order{
		OrderNumber:    s.OrderNumber,
		CustomerName:   s.CustomerName,
		CustomerEmail:  s.CustomerEmail,
		StorageType:    s.StorageType,
		StorageSizeGB:  s.StorageSizeGB,
		Amount:         s.Amount,
		Status:         s.Status,
		TrackingNumber: s.TrackingNumber,
		Carrier:        s.Carrier,
		FileCount:      s.FileCount,
		TotalSizeBytes: s.TotalSizeBytes,
		CreatedAt:      s.CreatedAt,
		PaidAt:         s.PaidAt,
		ShippedAt:      s.ShippedAt,
		DeliveredAt:    s.DeliveredAt,
		CancelledAt:    s.CancelledAt,
	}
}

func timelineFromResponse(r queries.GetOrderTimelineQueryResponse) Timeline {
	events := make([]TimelineEvent, 0, len(r.Events))
	for _, e := range r.Events {
		events = append(events, timelineEventOf(e))
	}
	return Timeline{Order: orderFromSummary(r.Order), Events: events}
}

func timelineEventOf(e services.TimelineEvent) TimelineEvent {
	return TimelineEvent{
		Type:        e.Type.String(),
		Title:       e.Title,
		Description: e.Description,
		Timestamp:   e.OccurredAt,
		Completed:   e.Completed,
	}
}

func adminOrderFromResponse(r queries.GetOrderHistoryQueryResponse) AdminOrder {
	d := r.Order
	files := make([]File, 0, len(d.Files))
	for _, f := range d.Files {
		files = append(files, File(f))
	}
	history := make([]StatusChange, 0, len(r.History))
	for _, c := range r.History {
		history = append(history, StatusChange(c))
	}

	return AdminOrder{
		Order:           orderFromSummary(d.OrderSummary),
		ShippingAddress: Address(d.ShippingAddress),
		AutoDelete:      d.AutoDelete,
		Notes:           d.Notes,
		PaymentIntentID: d.PaymentIntentID,
		Version:         d.Version,
		Files:           files,
		History:         history,
	}
}

func orderPageFromResponse(r queries.ListOrdersQueryResponse) OrderPage {
	items := make([]OrderListItem, 0, len(r.Orders))
	for _, o := range r.Orders {
		items = append(items, OrderListItem(o))
	}
	return OrderPage{Orders: items, Total: r.Total, Page: r.Page, PageSize: r.PageSize}
}

func inventoryItemFromView(v queries.InventoryItemView) InventoryItem {
	return InventoryItem(v)
}

func inventoryItemOf(item *inventory.Item) InventoryItem {
	return InventoryItem{
		ID:                item.ID().String(),
		StorageType:       item.Device().Type().String(),
		SizeGB:            int(item.Device().Size()),
		Quantity:          item.Quantity(),
		LowStockThreshold: item.LowStockThreshold(),
		IsLowStock:        item.IsLowStock(),
	}
}
