package queries

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery pages through orders, newest first, optionally filtered by status.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	status   *order.Status
	page     int
	pageSize int
	guard    guard.ConstructorGuard
}

// NewListOrdersQuery validates the filter and the paging window. An empty status
// lists every order; zero page and pageSize select the first page of DefaultPageSize.
func NewListOrdersQuery(status string, page, pageSize int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setStatus(status),
		q.setPage(page),
		q.setPageSize(pageSize),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() int     { return q.page }
func (q ListOrdersQuery) PageSize() int { return q.pageSize }

// Status returns the filter, or nil when every status is listed.
func (q ListOrdersQuery) Status() *order.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}

func (q *ListOrdersQuery) setStatus(status string) error {
	if status == "" {
		return nil
	}

	s, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	q.status = &s
	return nil
}

func (q *ListOrdersQuery) setPage(page int) error {
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	q.page = page
	return nil
}

func (q *ListOrdersQuery) setPageSize(pageSize int) error {
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return errs.NewValueIsOutOfRangeError("page size", pageSize, 1, MaxPageSize)
	}
	q.pageSize = pageSize
	return nil
}

// OrderListItem is one row of the admin order list.
type OrderListItem struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	Status        string
	StorageType   string
	StorageSizeGB int
	Amount        int64
	CreatedAt     time.Time
}

// ListOrdersQueryResponse is one page of orders and the total number of matches.
type ListOrdersQueryResponse struct {
	Orders   []OrderListItem
	Total    int64
	Page     int
	PageSize int
}

// ListOrdersQueryHandler reads the admin order list straight from the orders table.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	filter := sq.And{}
	if status := query.Status(); status != nil {
		filter = append(filter, sq.Eq{"status": status.String()})
	}

	countSQL, countArgs, err := sq.Select("COUNT(*)").From("orders").Where(filter).ToSql()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	var total int64
	if err := h.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	listSQL, listArgs, err := sq.Select(
		"order_number",
		"customer_name",
		"customer_email",
		"status",
		"storage_type",
		"storage_size_gb",
		"amount",
		"created_at",
	).
		From("orders").
		Where(filter).
		OrderBy("created_at DESC", "order_number DESC").
		Limit(uint64(query.PageSize())).
		Offset(uint64((query.Page() - 1) * query.PageSize())).
		ToSql()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	items := make([]OrderListItem, 0, query.PageSize())
	if err := h.db.WithContext(ctx).Raw(listSQL, listArgs...).Scan(&items).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	for i := range items {
		items[i].CreatedAt = items[i].CreatedAt.UTC()
	}

	return ListOrdersQueryResponse{
		Orders:   items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}
