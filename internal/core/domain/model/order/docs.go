// Package order provides the Order aggregate of the storefront: a storage device
// pre-loaded with the customer's cloud files and shipped to them.
//
// The package includes:
//   - Order: the aggregate root holding checkout data, lifecycle status, milestone timestamps and files
//   - Status: the lifecycle state machine and its adjacency table
//   - StatusChange: one entry of the append-only order history
//   - StatusChangedEvent: the domain event raised for every accepted change
//   - Customer, Address, File: value objects captured at checkout
//
// Key business rules:
//   - Orders start in pending_payment and move one step at a time along
//     pending_payment -> payment_received -> files_downloading -> files_downloaded
//     -> device_prepared -> shipped -> delivered
//   - Any non-terminal order can be cancelled; delivered and cancelled are terminal
//   - Shipping requires a tracking number and a carrier
//   - A rejected transition leaves the order unchanged
package order
