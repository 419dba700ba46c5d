// Package services provides domain services that work on aggregates without
// belonging to any single one of them.
//
// The package includes:
//   - TimelineProjector: derives the customer tracking timeline from an order and its history
package services
