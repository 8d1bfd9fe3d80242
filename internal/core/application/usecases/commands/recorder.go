// Package commands contains business operations that modify parcel state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command follows the same steps: validation, load, in-memory domain
// change, a single field-level store write.
//
// There is no unit of work: each mutation touches exactly one parcel document
// and the store applies it atomically. Concurrent writers resolve by last write
// wins.
package commands

// LifecycleRecorder receives a notification after each successful write.
// *metrics.DispatchMetrics satisfies it.
type LifecycleRecorder interface {
	ParcelCreated()
	DriverAssigned()
	StatusChanged(status string)
}

type noopRecorder struct{}

func (noopRecorder) ParcelCreated()       {}
func (noopRecorder) DriverAssigned()      {}
func (noopRecorder) StatusChanged(string) {}

func recorderOrNoop(r LifecycleRecorder) LifecycleRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
