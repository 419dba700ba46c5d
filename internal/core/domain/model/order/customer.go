package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is the buyer's contact data. The email receives lifecycle notifications.
type Customer struct {
	name  string
	email string
	guard guard.ConstructorGuard
}

// NewCustomer trims both values, requires them and checks the email is a bare address.
func NewCustomer(name, email string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	var errName, errEmail error
	if name == "" {
		errName = errs.NewValueIsRequiredError("customer name")
	}
	if email == "" {
		errEmail = errs.NewValueIsRequiredError("customer email")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errEmail = errs.NewValueIsInvalidErrorWithCause("customer email", fmt.Errorf("%q is not an email address", email))
	}
	if err := errors.Join(errName, errEmail); err != nil {
		return Customer{}, err
	}

	return Customer{
		name:  name,
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c Customer) Name() string {
	return c.name
}

func (c Customer) Email() string {
	return c.email
}

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}
