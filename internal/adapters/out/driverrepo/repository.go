// Package driverrepo reads driver accounts from the shared users collection.
package driverrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/spf13/cast"
)

const (
	// Collection holds every user account; drivers have role "driver".
	Collection = "users"

	FieldRole   = "role"
	FieldName   = "name"
	FieldStatus = "status"

	RoleDriver = "driver"

	defaultTimeout = 10 * time.Second
)

var _ ports.DriverRepository = (*Repository)(nil)

// Repository implements ports.DriverRepository.
type Repository struct {
	store   ports.DocumentStore
	timeout time.Duration
}

// NewRepository creates a driver repository. A zero timeout selects the default.
func NewRepository(store ports.DocumentStore, timeout time.Duration) *Repository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Repository{store: store, timeout: timeout}
}

// Get loads a driver. Accounts whose role is not driver are reported as not found.
func (r *Repository) Get(ctx context.Context, id string) (*driver.Driver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("driverId")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec, err := r.store.Get(ctx, Collection, id)
	if errors.Is(err, ports.ErrDocumentNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause("driverId", id, err)
	}
	if err != nil {
		return nil, errs.NewStoreUnavailableError("get driver", err)
	}
	if !strings.EqualFold(cast.ToString(rec[FieldRole]), RoleDriver) {
		return nil, errs.NewObjectNotFoundError("driverId", id)
	}

	return FromRecord(id, rec)
}

// ListByStatus returns drivers in status ordered by name.
func (r *Repository) ListByStatus(ctx context.Context, status driver.Status) ([]*driver.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	docs, err := r.store.Find(ctx, Collection, ports.Query{
		Filters: []ports.Filter{
			{Field: FieldRole, Value: RoleDriver},
			{Field: FieldStatus, Value: status.String()},
		},
		OrderBy: FieldName,
	})
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list drivers", err)
	}

	drivers := make([]*driver.Driver, 0, len(docs))
	for _, doc := range docs {
		d, err := FromRecord(doc.ID, doc.Data)
		if err != nil {
			continue
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

// FromRecord decodes a user record. A missing or unknown status reads as OFF_DUTY.
func FromRecord(id string, rec ports.Record) (*driver.Driver, error) {
	status, err := driver.ParseStatus(cast.ToString(rec[FieldStatus]))
	if err != nil {
		status = driver.OffDuty
	}
	return driver.RestoreDriver(id, cast.ToString(rec[FieldName]), status)
}
