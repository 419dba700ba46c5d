package kernel

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// StorageType is the kind of physical device an order ships on.
type StorageType string

const (
	FlashDrive StorageType = "flash_drive"
	MemoryCard StorageType = "memory_card"
)

// StorageTypes lists the supported device kinds in display order.
func StorageTypes() []StorageType {
	return []StorageType{FlashDrive, MemoryCard}
}

// ParseStorageType converts external input into a StorageType.
func ParseStorageType(s string) (StorageType, error) {
	t := StorageType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate accepts only flash_drive and memory_card.
func (t StorageType) Validate() error {
	switch t {
	case FlashDrive, MemoryCard:
		return nil
	case "":
		return errs.NewValueIsRequiredError("storage type")
	default:
		return errs.NewValueIsInvalidErrorWithCause("storage type", fmt.Errorf("%q is not a supported storage type", string(t)))
	}
}

func (t StorageType) String() string {
	return string(t)
}

// StorageSize is a device capacity in gigabytes.
type StorageSize int

const (
	Size32GB  StorageSize = 32
	Size64GB  StorageSize = 64
	Size128GB StorageSize = 128
	Size256GB StorageSize = 256
)

// StorageSizes lists the supported capacities in ascending order.
func StorageSizes() []StorageSize {
	return []StorageSize{Size32GB, Size64GB, Size128GB, Size256GB}
}

// Validate accepts only the four published capacities.
func (s StorageSize) Validate() error {
	switch s {
	case Size32GB, Size64GB, Size128GB, Size256GB:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("storage size", fmt.Errorf("%d GB is not a supported size", int(s)))
	}
}

func (s StorageSize) String() string {
	return fmt.Sprintf("%dGB", int(s))
}

var ErrStorageDeviceIsNotConstructed = errors.New("StorageDevice must be created via NewStorageDevice")

// StorageDevice is the (type, size) pair a customer selects.
type StorageDevice struct {
	storageType StorageType
	size        StorageSize
	guard       guard.ConstructorGuard
}

// NewStorageDevice validates both parts of the selection.
func NewStorageDevice(storageType StorageType, size StorageSize) (StorageDevice, error) {
	if err := errors.Join(storageType.Validate(), size.Validate()); err != nil {
		return StorageDevice{}, err
	}

	return StorageDevice{
		storageType: storageType,
		size:        size,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (d StorageDevice) Type() StorageType {
	return d.storageType
}

func (d StorageDevice) Size() StorageSize {
	return d.size
}

// IsEqual compares type and size.
func (d StorageDevice) IsEqual(other StorageDevice) bool {
	return d.storageType == other.storageType && d.size == other.size
}

// String renders the device as "flash_drive/64GB".
func (d StorageDevice) String() string {
	return fmt.Sprintf("%s/%s", d.storageType, d.size)
}

func (d StorageDevice) Validate() error {
	return d.guard.Validate(ErrStorageDeviceIsNotConstructed)
}
