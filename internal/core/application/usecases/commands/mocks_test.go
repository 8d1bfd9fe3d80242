package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) (*parcel.Parcel, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
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
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) UpdateStatus(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Watch(ctx context.Context) (ports.Watcher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Watcher), args.Error(1)
}

type MockPhotoUploader struct{ mock.Mock }

func (m *MockPhotoUploader) Upload(ctx context.Context, parcelID, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, parcelID, contentType, data)
	return args.String(0), args.Error(1)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) ParcelCreated()              { m.Called() }
func (m *MockRecorder) DriverAssigned()             { m.Called() }
func (m *MockRecorder) StatusChanged(status string) { m.Called(status) }

func details() parcel.Details {
	return parcel.Details{
		SenderName:     "Acme Supplies",
		ReceiverName:   "Jane Doe",
		ReceiverPhone:  "+1 555 0100",
		PickupAddress:  "1 Depot Road",
		DropoffAddress: "9 Elm Street",
		PackageDetails: "2 boxes",
	}
}

func stored(t *testing.T, id string, status parcel.Status, driver string) *parcel.Parcel {
	t.Helper()
	p, err := parcel.RestoreParcel(id, details(), status, driver, 1_000, nil, nil)
	require.NoError(t, err)
	return p
}
