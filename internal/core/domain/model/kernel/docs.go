// Package kernel provides core domain primitives shared by the parcel and
// driver models of the dispatch system.
//
// The package includes:
//   - Timestamp: an instant stored as milliseconds since the Unix epoch, the
//     representation used by every persisted parcel record
//   - Clock: the source of "now" for lifecycle transitions, replaceable in tests
//
// These primitives are immutable values and safe for concurrent use.
package kernel
