package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var publishedCatalog []byte

// Entry is one purchasable device option with its price in minor currency units.
type Entry struct {
	Device kernel.StorageDevice
	Price  int64
}

// Catalog is the immutable list of device options offered by the storefront.
type Catalog struct {
	currency string
	entries  []Entry
}

type document struct {
	Currency string `yaml:"currency"`
	Devices  []struct {
		Type   string `yaml:"type"`
		SizeGB int    `yaml:"sizeGB"`
		Price  int64  `yaml:"price"`
	} `yaml:"devices"`
}

var loadPublished = sync.OnceValues(func() (*Catalog, error) {
	return Parse(publishedCatalog)
})

// Published returns the catalog embedded into the binary.
func Published() (*Catalog, error) {
	return loadPublished()
}

// Parse reads a catalog document. Every entry must name a known storage type and
// size with a positive price, and no option may be listed twice.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if doc.Currency == "" {
		return nil, errs.NewValueIsRequiredError("catalog currency")
	}

	c := &Catalog{currency: doc.Currency}
	seen := make(map[string]struct{}, len(doc.Devices))
	for i, d := range doc.Devices {
		storageType, err := kernel.ParseStorageType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		device, err := kernel.NewStorageDevice(storageType, kernel.StorageSize(d.SizeGB))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if d.Price <= 0 {
			return nil, fmt.Errorf("catalog entry %d: %w", i,
				errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%d is not greater than 0", d.Price)))
		}
		if _, dup := seen[device.String()]; dup {
			return nil, fmt.Errorf("catalog entry %d: %w", i,
				errs.NewValueIsInvalidErrorWithCause("device", fmt.Errorf("%s is listed twice", device)))
		}
		seen[device.String()] = struct{}{}
		c.entries = append(c.entries, Entry{Device: device, Price: d.Price})
	}

	if len(c.entries) == 0 {
		return nil, errors.New("catalog has no devices")
	}

	sort.SliceStable(c.entries, func(i, j int) bool {
		a, b := c.entries[i].Device, c.entries[j].Device
		if a.Type() != b.Type() {
			return a.Type() < b.Type()
		}
		return a.Size() < b.Size()
	})
	return c, nil
}

func (c *Catalog) Currency() string {
	return c.currency
}

// Entries returns a copy of all options ordered by storage type, then size.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry of device. A device the storefront does not sell is a
// ValueIsInvalidError.
func (c *Catalog) Lookup(device kernel.StorageDevice) (Entry, error) {
	if err := device.Validate(); err != nil {
		return Entry{}, err
	}
	for _, e := range c.entries {
		if e.Device.IsEqual(device) {
			return e, nil
		}
	}
	return Entry{}, errs.NewValueIsInvalidErrorWithCause("storage device", fmt.Errorf("%s is not in the catalog", device))
}

// CheckPrice verifies that amount is exactly the published price of device.
func (c *Catalog) CheckPrice(device kernel.StorageDevice, amount int64) error {
	entry, err := c.Lookup(device)
	if err != nil {
		return err
	}
	if amount != entry.Price {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d does not match the catalog price %d of %s", amount, entry.Price, device),
		)
	}
	return nil
}
