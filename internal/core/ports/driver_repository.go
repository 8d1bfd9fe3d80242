package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// DriverRepository reads driver accounts. Dispatch never writes them.
type DriverRepository interface {
	// Get loads a driver by account id.
	Get(ctx context.Context, id string) (*driver.Driver, error)

	// ListByStatus returns drivers in the given status ordered by name.
	ListByStatus(ctx context.Context, status driver.Status) ([]*driver.Driver, error)
}
