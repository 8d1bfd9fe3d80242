// Package services provides domain services that operate across many parcels
// at once. Logic here is pure: it takes snapshots of aggregates and returns new
// slices without touching storage.
//
// The package includes:
//   - ParcelProjector: filters and orders parcels for the dispatcher and driver views
//
// Every view in the application is a projection computed by this package, so
// a one-shot read and a live subscription always agree on membership and order.
package services
