package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/payment"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// eventPublisher is an EventPublisher that holds connections.
type eventPublisher interface {
	ports.EventPublisher
	Close() error
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *catalog.Catalog
	publisher  eventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	published, err := catalog.Published()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var publisher eventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic, logger)
	} else {
		logger.Warn("KAFKA_BROKERS is empty, order events are only logged")
		publisher = kafka.NewLogPublisher(logger)
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    published,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() ports.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		payment.NewSandboxGateway(c.logger),
		c.catalog,
		c.cfg.OrderNumberPrefix,
		ports.SystemClock,
	)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory(), ports.SystemClock)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), ports.SystemClock)
}

func (c *CompositionRoot) CreateUpdateInventoryItemCommandHandler() commands.UpdateInventoryItemCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateInventoryItemCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher, ports.SystemClock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrderTimelineQueryHandler() queries.GetOrderTimelineQueryHandler {
	return queries.NewGetOrderTimelineQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInventoryQueryHandler() queries.GetInventoryQueryHandler {
	return queries.NewGetInventoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLowStockItemsQueryHandler() queries.GetLowStockItemsQueryHandler {
	return queries.NewGetLowStockItemsQueryHandler(c.gormDB)
}

// NewHTTPServer builds the echo instance serving every route.
func (c *CompositionRoot) NewHTTPServer() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		TransitionOrderStatus: c.CreateTransitionOrderStatusCommandHandler(),
		ConfirmPayment:        c.CreateConfirmPaymentCommandHandler(),
		UpdateInventoryItem:   c.CreateUpdateInventoryItemCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetOrderTimeline:      c.CreateGetOrderTimelineQueryHandler(),
		GetOrderHistory:       c.CreateGetOrderHistoryQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetInventory:          c.CreateGetInventoryQueryHandler(),
	})

	return httpin.NewRouter(server, httpin.RouterConfig{
		JWTSecret: []byte(c.cfg.JWTSecret),
		Logger:    c.logger,
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	relay := c.CreateRelayOutboxCommandHandler()
	return jobs.NewJobManager(
		jobs.Schedules{
			OutboxRelay: c.cfg.OutboxRelaySchedule,
			LowStock:    c.cfg.LowStockSchedule,
		},
		&relay,
		c.cfg.OutboxRelayBatchSize,
		c.CreateGetLowStockItemsQueryHandler(),
		c.logger,
	)
}

// Ping checks that the database answers.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the publisher connections.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
