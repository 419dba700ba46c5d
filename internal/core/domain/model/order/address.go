package order

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the shipping destination of the device. Line2 is optional.
type Address struct {
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

// NewAddress trims all parts and requires every part except line2.
// All missing parts are reported together.
func NewAddress(line1, line2, city, state, postalCode, country string) (Address, error) {
	a := Address{
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
	}

	if err := errors.Join(
		required("address line 1", a.line1),
		required("city", a.city),
		required("state", a.state),
		required("postal code", a.postalCode),
		required("country", a.country),
	); err != nil {
		return Address{}, err
	}

	a.guard = guard.NewConstructorGuard()
	return a, nil
}

func required(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() string    { return a.country }

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
