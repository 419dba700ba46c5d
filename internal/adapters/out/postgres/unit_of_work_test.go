package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/inventoryrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/outboxrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var createdAt = time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	number, err := kernel.GenerateOrderNumber(kernel.DefaultOrderNumberPrefix, createdAt)
	require.NoError(t, err)
	return newTestOrderWithNumber(t, number)
}

func newTestOrderWithNumber(t *testing.T, number kernel.OrderNumber) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	address, err := order.NewAddress("1 Main St", "", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)
	device, err := kernel.NewStorageDevice(kernel.MemoryCard, kernel.Size128GB)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), number, order.Checkout{
		Customer:        customer,
		ShippingAddress: address,
		Device:          device,
		Amount:          5999,
	}, createdAt)
	require.NoError(t, err)
	return o
}

func newSQLiteFactory(t *testing.T) (*gorm.DB, *postgres_adapter.GormUnitOfWorkFactory) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusChangeDTO{},
		&inventoryrepo.InventoryItemDTO{},
		&outboxrepo.OutboxMessageDTO{},
	))
	return db, postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func TestGormUnitOfWork_CommitDrainsEventsOnce(t *testing.T) {
	ctx := context.Background()
	db, factory := newSQLiteFactory(t)
	o := newTestOrder(t)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))

	_, err := o.Transition(order.Cancelled, order.TransitionFields{}, createdAt.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, uow.OrderRepository().Update(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	assert.Empty(t, o.DomainEvents())

	var messages []outboxrepo.OutboxMessageDTO
	require.NoError(t, db.Order("id").Find(&messages).Error)
	require.Len(t, messages, 2, "an aggregate tracked twice contributes its events once")
	assert.Equal(t, order.EventNameOrderCreated, messages[0].EventName)
	assert.Equal(t, order.EventNameOrderStatusChanged, messages[1].EventName)
	assert.Nil(t, messages[0].PublishedAt)
}

func TestGormUnitOfWork_RollbackKeepsEvents(t *testing.T) {
	ctx := context.Background()
	db, factory := newSQLiteFactory(t)
	o := newTestOrder(t)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Rollback(ctx))

	assert.Len(t, o.DomainEvents(), 1)

	var count int64
	require.NoError(t, db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGormUnitOfWork_CommitWithoutBegin(t *testing.T) {
	_, factory := newSQLiteFactory(t)

	uow := factory.Create()

	assert.ErrorIs(t, uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
	assert.ErrorIs(t, uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}
