package parcelrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/adapters/out/documentstore/memstore"
	"dispatch/internal/adapters/out/parcelrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDocumentStore is a mock implementation of ports.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Get(ctx context.Context, collection, id string) (ports.Record, error) {
	args := m.Called(ctx, collection, id)
	rec, _ := args.Get(0).(ports.Record)
	return rec, args.Error(1)
}

func (m *MockDocumentStore) Find(ctx context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	args := m.Called(ctx, collection, q)
	docs, _ := args.Get(0).([]ports.Document)
	return docs, args.Error(1)
}

func (m *MockDocumentStore) Add(ctx context.Context, collection string, data ports.Record) (string, error) {
	args := m.Called(ctx, collection, data)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields ports.Record) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *MockDocumentStore) Watch(ctx context.Context, collection string) (ports.Watcher, error) {
	args := m.Called(ctx, collection)
	w, _ := args.Get(0).(ports.Watcher)
	return w, args.Error(1)
}

func (m *MockDocumentStore) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockFailureRecorder is a mock implementation of parcelrepo.FailureRecorder.
type MockFailureRecorder struct {
	mock.Mock
}

func (m *MockFailureRecorder) StoreFailure(operation string) {
	m.Called(operation)
}

func newDetails() parcel.Details {
	return parcel.Details{
		SenderName:     "Acme",
		ReceiverName:   "Jane",
		PickupAddress:  "1 Depot Rd",
		DropoffAddress: "9 Elm St",
	}
}

func TestRepository_AddGetList(t *testing.T) {
	ctx := t.Context()
	store := memstore.New()
	repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)

	// Given
	p, err := parcel.NewParcel(newDetails(), now)
	require.NoError(t, err)

	// When
	saved, err := repo.Add(ctx, p)

	// Then
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID())

	raw, err := store.Get(ctx, parcelrepo.Collection, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, parcel.UnassignedDriver, raw["assignedDriver"])
	assert.Equal(t, "pending", raw["status"])

	loaded, err := repo.Get(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), loaded.ID())
	assert.True(t, loaded.IsUnassigned())

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, saved.ID(), all[0].ID())
}

func TestRepository_ListAllReadsLegacyRecords(t *testing.T) {
	ctx := t.Context()
	store := memstore.New()
	repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)

	require.NoError(t, store.Put(ctx, parcelrepo.Collection, "legacy", ports.Record{
		"senderName": "Old Client",
	}))

	all, err := repo.ListAll(ctx)

	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, parcel.Pending, all[0].Status())
	assert.True(t, all[0].IsUnassigned())
	assert.Equal(t, now, all[0].CreatedAt())
}

func TestRepository_UpdateAssignmentWritesOnlyAssignmentFields(t *testing.T) {
	ctx := t.Context()
	store := new(MockDocumentStore)
	repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)

	p, err := parcel.RestoreParcel("p1", newDetails(), parcel.Pending, "", now, nil, nil)
	require.NoError(t, err)
	require.NoError(t, p.AssignTo("d1"))

	store.On("Update", mock.Anything, parcelrepo.Collection, "p1", ports.Record{
		"assignedDriver": "d1",
		"status":         "assigned",
	}).Return(nil).Once()

	require.NoError(t, repo.UpdateAssignment(ctx, p))
	store.AssertExpectations(t)
}

func TestRepository_UpdateStatus(t *testing.T) {
	t.Run("non-terminal status writes status only", func(t *testing.T) {
		store := new(MockDocumentStore)
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)

		p, err := parcel.RestoreParcel("p1", newDetails(), parcel.PickedUp, "d1", now, nil, nil)
		require.NoError(t, err)

		store.On("Update", mock.Anything, parcelrepo.Collection, "p1", ports.Record{
			"status": "picked_up",
		}).Return(nil).Once()

		require.NoError(t, repo.UpdateStatus(t.Context(), p))
		store.AssertExpectations(t)
	})

	t.Run("delivered writes delivery fields in the same update", func(t *testing.T) {
		store := new(MockDocumentStore)
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)

		p, err := parcel.RestoreParcel("p1", newDetails(), parcel.InTransit, "d1", now, nil, nil)
		require.NoError(t, err)
		url := "https://cdn.example.com/pod.jpg"
		require.NoError(t, p.Advance(parcel.Delivered, now+100, &url))

		store.On("Update", mock.Anything, parcelrepo.Collection, "p1", ports.Record{
			"status":           "delivered",
			"deliveredAt":      (now + 100).Millis(),
			"deliveryPhotoUrl": url,
		}).Return(nil).Once()

		require.NoError(t, repo.UpdateStatus(t.Context(), p))
		store.AssertExpectations(t)
	})
}

func TestRepository_ErrorClassification(t *testing.T) {
	t.Run("missing document is not found", func(t *testing.T) {
		repo := parcelrepo.NewRepository(memstore.New(), kernel.FixedClock(now), time.Second, nil)

		_, err := repo.Get(t.Context(), "nope")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.NotErrorIs(t, err, errs.ErrStoreUnavailable)
	})

	t.Run("update of missing document is not found", func(t *testing.T) {
		repo := parcelrepo.NewRepository(memstore.New(), kernel.FixedClock(now), time.Second, nil)
		p, err := parcel.RestoreParcel("nope", newDetails(), parcel.Assigned, "d1", now, nil, nil)
		require.NoError(t, err)

		err = repo.UpdateAssignment(t.Context(), p)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("backend failure is store unavailable and counted", func(t *testing.T) {
		store := new(MockDocumentStore)
		recorder := new(MockFailureRecorder)
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, recorder)
		cause := errors.New("permission denied")

		store.On("Find", mock.Anything, parcelrepo.Collection, ports.Query{}).Return(nil, cause).Once()
		recorder.On("StoreFailure", "list parcels").Once()

		_, err := repo.ListAll(t.Context())

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		require.ErrorIs(t, err, cause)
		store.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("add failure returns no parcel", func(t *testing.T) {
		store := new(MockDocumentStore)
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)
		p, err := parcel.NewParcel(newDetails(), now)
		require.NoError(t, err)

		store.On("Add", mock.Anything, parcelrepo.Collection, mock.Anything).Return("", errors.New("offline")).Once()

		saved, err := repo.Add(t.Context(), p)

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		assert.Nil(t, saved)
	})

	t.Run("timeout is store unavailable", func(t *testing.T) {
		store := new(MockDocumentStore)
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), 20*time.Millisecond, nil)

		store.On("Get", mock.Anything, parcelrepo.Collection, "p1").
			Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				<-ctx.Done()
			}).
			Return(nil, context.DeadlineExceeded).Once()

		_, err := repo.Get(t.Context(), "p1")

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("blank id is rejected before the store is called", func(t *testing.T) {
		store := new(MockDocumentStore)
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)

		_, err := repo.Get(t.Context(), "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unconstructed parcel is rejected", func(t *testing.T) {
		repo := parcelrepo.NewRepository(new(MockDocumentStore), kernel.FixedClock(now), time.Second, nil)

		err := repo.UpdateStatus(t.Context(), &parcel.Parcel{})

		require.ErrorIs(t, err, parcel.ErrParcelIsNotConstructed)
	})
}

func TestRepository_Watch(t *testing.T) {
	t.Run("unsupported passes through", func(t *testing.T) {
		store := new(MockDocumentStore)
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)
		store.On("Watch", mock.Anything, parcelrepo.Collection).Return(nil, ports.ErrWatchUnsupported).Once()

		_, err := repo.Watch(t.Context())

		require.ErrorIs(t, err, ports.ErrWatchUnsupported)
		assert.NotErrorIs(t, err, errs.ErrStoreUnavailable)
	})

	t.Run("signals writes through the repository", func(t *testing.T) {
		store := memstore.New()
		repo := parcelrepo.NewRepository(store, kernel.FixedClock(now), time.Second, nil)

		w, err := repo.Watch(t.Context())
		require.NoError(t, err)
		defer w.Close()

		p, err := parcel.NewParcel(newDetails(), now)
		require.NoError(t, err)
		_, err = repo.Add(t.Context(), p)
		require.NoError(t, err)

		select {
		case <-w.Changes():
		case <-time.After(time.Second):
			t.Fatal("no change notification")
		}
	})
}
