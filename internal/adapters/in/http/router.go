package http

import (
	"log/slog"
	"net/http"

	"storefront/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const documentPath = "/api/openapi.yaml"

// RouterConfig carries what the router needs besides the server.
type RouterConfig struct {
	JWTSecret []byte
	Logger    *slog.Logger
}

// NewRouter builds the echo instance with every route, the OpenAPI request
// validation and the admin authentication in place.
//
// Admin requests are authenticated before they are validated, so an anonymous
// caller always gets 401 whatever the body.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)
	e.Use(middleware.Recover(), middleware.RequestID(), RequestLogger(cfg.Logger))

	e.GET("/health", s.Health)
	e.GET(documentPath, func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.Document())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(documentPath)))

	customer := e.Group("/api", validate)
	customer.POST("/orders", s.CreateOrder)
	customer.GET("/orders/:orderNumber", s.GetOrder)
	customer.GET("/orders/:orderNumber/timeline", s.GetOrderTimeline)
	customer.POST("/payments/webhook", s.PaymentWebhook)

	admin := e.Group("/api/admin", Authenticate(cfg.JWTSecret), RequireRole(RoleAdmin), validate)
	admin.GET("/orders", s.ListOrders)
	admin.GET("/orders/:orderNumber", s.GetAdminOrder)
	admin.PATCH("/orders/:orderNumber", s.UpdateOrder)
	admin.GET("/inventory", s.GetInventory)
	admin.PATCH("/inventory/:id", s.UpdateInventoryItem)

	return e, nil
}
