package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// FileParams is one cloud file picked by the customer.
type FileParams struct {
	ID        string
	Name      string
	SizeBytes int64
}

// CreateOrderParams is the raw checkout input.
type CreateOrderParams struct {
	CustomerName  string
	CustomerEmail string

	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string

	StorageType   string
	StorageSizeGB int
	Amount        int64
	AutoDelete    bool
	Files         []FileParams
}

// CreateOrderCommand represents a customer checkout.
// All input is converted into domain value objects by the constructor.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    CustomerName:  "Ada Lovelace",
//	    CustomerEmail: "ada@example.com",
//	    AddressLine1:  "1 Main St",
//	    City:          "Springfield",
//	    State:         "IL",
//	    PostalCode:    "62701",
//	    Country:       "US",
//	    StorageType:   "flash_drive",
//	    StorageSizeGB: 64,
//	    Amount:        3999,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	checkout order.Checkout

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout input. All problems are reported together.
func NewCreateOrderCommand(params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(params.CustomerName, params.CustomerEmail),
		cmd.setShippingAddress(params),
		cmd.setDevice(params.StorageType, params.StorageSizeGB),
		cmd.setAmount(params.Amount),
		cmd.setFiles(params.Files),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.checkout.AutoDelete = params.AutoDelete
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Checkout returns the validated checkout data.
func (c CreateOrderCommand) Checkout() order.Checkout {
	checkout := c.checkout
	checkout.Files = make([]order.File, len(c.checkout.Files))
	copy(checkout.Files, c.checkout.Files)
	return checkout
}

func (c *CreateOrderCommand) setCustomer(name, email string) error {
	customer, err := order.NewCustomer(name, email)
	if err != nil {
		return err
	}

	c.checkout.Customer = customer
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(p CreateOrderParams) error {
	address, err := order.NewAddress(p.AddressLine1, p.AddressLine2, p.City, p.State, p.PostalCode, p.Country)
	if err != nil {
		return err
	}

	c.checkout.ShippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setDevice(storageType string, sizeGB int) error {
	st, errType := kernel.ParseStorageType(storageType)
	size := kernel.StorageSize(sizeGB)
	if err := errors.Join(errType, size.Validate()); err != nil {
		return err
	}

	device, err := kernel.NewStorageDevice(st, size)
	if err != nil {
		return err
	}

	c.checkout.Device = device
	return nil
}

func (c *CreateOrderCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}

	c.checkout.Amount = amount
	return nil
}

func (c *CreateOrderCommand) setFiles(params []FileParams) error {
	files := make([]order.File, 0, len(params))
	for i, p := range params {
		f, err := order.NewFile(p.ID, p.Name, p.SizeBytes)
		if err != nil {
			return fmt.Errorf("file %d: %w", i, err)
		}
		files = append(files, f)
	}

	c.checkout.Files = files
	return nil
}
