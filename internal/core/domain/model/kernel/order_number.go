package kernel

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	// DefaultOrderNumberPrefix is used when no prefix is configured.
	DefaultOrderNumberPrefix = "NCS"

	orderNumberSuffixLength   = 5
	orderNumberSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrOrderNumberIsNotConstructed = errors.New("OrderNumber must be created via NewOrderNumber or ParseOrderNumber")

	orderNumberPattern = regexp.MustCompile(`^([A-Z]{2,10})-(\d{1,15})-([A-Z0-9]{5})$`)
	prefixPattern      = regexp.MustCompile(`^[A-Z]{2,10}$`)
)

// OrderNumber is the public identity of an order: PREFIX-<unix millis>-<5 uppercase alnum>.
// It is the only order identifier customers and admins ever see.
//
// Example:
//
//	number, err := kernel.NewOrderNumber("NCS", time.Now(), rand.Reader)
//	// number.String() == "NCS-1718000000000-7QK2D"
type OrderNumber struct {
	value string
	guard guard.ConstructorGuard
}

// NewOrderNumber builds a fresh order number for the given instant, drawing the
// random suffix from random (crypto/rand.Reader in production).
//
// Collision resistance comes from the millisecond timestamp combined with
// 36^5 suffixes; the store still enforces uniqueness.
func NewOrderNumber(prefix string, at time.Time, random io.Reader) (OrderNumber, error) {
	if !prefixPattern.MatchString(prefix) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number prefix",
			fmt.Errorf("%q must be 2 to 10 uppercase letters", prefix),
		)
	}

	suffix := make([]byte, orderNumberSuffixLength)
	alphabetSize := big.NewInt(int64(len(orderNumberSuffixAlphabet)))
	for i := range suffix {
		n, err := rand.Int(random, alphabetSize)
		if err != nil {
			return OrderNumber{}, fmt.Errorf("generate order number suffix: %w", err)
		}
		suffix[i] = orderNumberSuffixAlphabet[n.Int64()]
	}

	return OrderNumber{
		value: fmt.Sprintf("%s-%d-%s", prefix, at.UnixMilli(), suffix),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// GenerateOrderNumber is NewOrderNumber with crypto/rand as the randomness source.
func GenerateOrderNumber(prefix string, at time.Time) (OrderNumber, error) {
	return NewOrderNumber(prefix, at, rand.Reader)
}

// ParseOrderNumber validates the textual form of an order number received from a caller or storage.
func ParseOrderNumber(s string) (OrderNumber, error) {
	if s == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number",
			fmt.Errorf("%q does not match PREFIX-<timestamp>-<5 chars>", s),
		)
	}

	return OrderNumber{value: s, guard: guard.NewConstructorGuard()}, nil
}

// String returns the order number as shown to customers.
func (n OrderNumber) String() string {
	return n.value
}

// Prefix returns the leading letters of the number.
func (n OrderNumber) Prefix() string {
	if m := orderNumberPattern.FindStringSubmatch(n.value); m != nil {
		return m[1]
	}
	return ""
}

// IssuedAt returns the instant encoded in the number.
func (n OrderNumber) IssuedAt() time.Time {
	m := orderNumberPattern.FindStringSubmatch(n.value)
	if m == nil {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

// IsEqual compares two order numbers.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate fails for a zero OrderNumber.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}
