package queries_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/documentstore/memstore"
	"dispatch/internal/adapters/out/driverrepo"
	"dispatch/internal/adapters/out/parcelrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const now = kernel.Timestamp(9_999_000)

type fixture struct {
	store   *memstore.Store
	parcels *parcelrepo.Repository
	drivers *driverrepo.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memstore.New()
	return fixture{
		store:   store,
		parcels: parcelrepo.NewRepository(store, kernel.FixedClock(now), 0, nil),
		drivers: driverrepo.NewRepository(store, 0),
	}
}

// putParcel stores a raw record, including the legacy shapes older clients wrote.
func (f fixture) putParcel(t *testing.T, id string, rec ports.Record) {
	t.Helper()
	base := ports.Record{
		parcelrepo.FieldSenderName:     "Acme",
		parcelrepo.FieldReceiverName:   "Jane",
		parcelrepo.FieldPickupAddress:  "1 Depot Road",
		parcelrepo.FieldDropoffAddress: "9 Elm Street",
	}
	for k, v := range rec {
		base[k] = v
	}
	require.NoError(t, f.store.Put(t.Context(), parcelrepo.Collection, id, base))
}

func ids(parcels []queries.ParcelResponse) []string {
	out := make([]string, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, p.ID)
	}
	return out
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) (*parcel.Parcel, error) {
	args := m.Called(ctx, p)
	return nil, args.Error(1)
}

func (m *MockParcelRepository) Get(ctx context.Context, id string) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ListAll(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) UpdateAssignment(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) UpdateStatus(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Watch(ctx context.Context) (ports.Watcher, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Get(ctx context.Context, id string) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) ListByStatus(ctx context.Context, status driver.Status) ([]*driver.Driver, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}
