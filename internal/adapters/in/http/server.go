package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder           commands.CreateOrderCommandHandler
	TransitionOrderStatus commands.TransitionOrderStatusCommandHandler
	ConfirmPayment        commands.ConfirmPaymentCommandHandler
	UpdateInventoryItem   commands.UpdateInventoryItemCommandHandler

	// Query handlers
	GetOrder         queries.GetOrderQueryHandler
	GetOrderTimeline queries.GetOrderTimelineQueryHandler
	GetOrderHistory  queries.GetOrderHistoryQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	GetInventory     queries.GetInventoryQueryHandler
}

// Server translates HTTP requests into commands and queries.
// Handler errors are returned as they are and rendered by the error handler.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(body.params())
	if err != nil {
		return err
	}

	result, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{
		OrderNumber:  result.OrderNumber.String(),
		Status:       result.Status.String(),
		Amount:       result.Amount,
		ClientSecret: result.ClientSecret,
	})
}

// GetOrder handles GET /api/orders/{orderNumber} - the public order view.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := s.orderQuery(ctx)
	if err != nil {
		return err
	}

	summary, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orderFromSummary(summary))
}

// GetOrderTimeline handles GET /api/orders/{orderNumber}/timeline.
func (s *Server) GetOrderTimeline(ctx echo.Context) error {
	query, err := s.orderQuery(ctx)
	if err != nil {
		return err
	}

	timeline, err := s.h.GetOrderTimeline.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, timelineFromResponse(timeline))
}

// PaymentWebhook handles POST /api/payments/webhook - the payment collaborator
// confirms that an intent was paid.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var body PaymentConfirmation
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(body.OrderNumber, body.PaymentIntentID)
	if err != nil {
		return err
	}

	if err := s.h.ConfirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListOrders handles GET /api/admin/orders?status=&page=&pageSize=.
func (s *Server) ListOrders(ctx echo.Context) error {
	var (
		status   string
		page     int
		pageSize int
	)
	params := ctx.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter status")
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", params, &page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter page")
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", params, &pageSize); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter pageSize")
	}

	query, err := queries.NewListOrdersQuery(status, page, pageSize)
	if err != nil {
		return err
	}

	result, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orderPageFromResponse(result))
}

// GetAdminOrder handles GET /api/admin/orders/{orderNumber} - details plus status history.
func (s *Server) GetAdminOrder(ctx echo.Context) error {
	query, err := s.orderQuery(ctx)
	if err != nil {
		return err
	}

	result, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, adminOrderFromResponse(result))
}

// UpdateOrder handles PATCH /api/admin/orders/{orderNumber} - moves the order through
// the lifecycle and updates tracking details.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderNumber, err := bindPathParameter(ctx, "orderNumber")
	if err != nil {
		return err
	}

	var body OrderUpdate
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(
		orderNumber, body.Status, body.TrackingNumber, body.Carrier, body.Notes,
	)
	if err != nil {
		return err
	}

	updated, err := s.h.TransitionOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orderFromSummary(queries.SummaryOf(updated)))
}

// GetInventory handles GET /api/admin/inventory.
func (s *Server) GetInventory(ctx echo.Context) error {
	items, err := s.h.GetInventory.Handle(ctx.Request().Context())
	if err != nil {
		return err
	}

	response := make([]InventoryItem, len(items))
	for i, item := range items {
		response[i] = inventoryItemFromView(item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateInventoryItem handles PATCH /api/admin/inventory/{id}.
func (s *Server) UpdateInventoryItem(ctx echo.Context) error {
	id, err := bindPathParameter(ctx, "id")
	if err != nil {
		return err
	}

	var body InventoryUpdate
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateInventoryItemCommand(id, body.Quantity, body.LowStockThreshold)
	if err != nil {
		return err
	}

	item, err := s.h.UpdateInventoryItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, inventoryItemOf(item))
}

func (s *Server) orderQuery(ctx echo.Context) (queries.GetOrderQuery, error) {
	orderNumber, err := bindPathParameter(ctx, "orderNumber")
	if err != nil {
		return queries.GetOrderQuery{}, err
	}
	return queries.NewGetOrderQuery(orderNumber)
}

func bindPathParameter(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name)
	}
	return value, nil
}
