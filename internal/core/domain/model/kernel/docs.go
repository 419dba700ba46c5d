// Package kernel provides the shared domain primitives of the storefront.
//
// The package includes:
//   - UUID: internal identifier of aggregates, history entries and events
//   - OrderNumber: the public, human-readable order identity
//   - StorageType, StorageSize, StorageDevice: the device a customer selects
//   - DomainEvent: the contract of events raised by aggregates
//
// Value objects here are immutable and validate themselves on construction;
// their zero values fail Validate.
package kernel
