package queries_test

import (
	"testing"

	"dispatch/internal/adapters/out/driverrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAvailableDriversQueryHandler_Handle(t *testing.T) {
	t.Run("available drivers by name", func(t *testing.T) {
		// Given
		f := newFixture(t)
		users := map[string]ports.Record{
			"u1": {"role": "driver", "status": "AVAILABLE", "name": "Zoe"},
			"u2": {"role": "driver", "status": "AVAILABLE", "name": "Adam"},
			"u3": {"role": "driver", "status": "ON_DELIVERY", "name": "Bea"},
			"u4": {"role": "dispatcher", "status": "AVAILABLE", "name": "Carl"},
		}
		for id, rec := range users {
			require.NoError(t, f.store.Put(t.Context(), driverrepo.Collection, id, rec))
		}

		// When
		got, err := queries.NewListAvailableDriversQueryHandler(f.drivers).
			Handle(t.Context(), queries.NewListAvailableDriversQuery())

		// Then
		require.NoError(t, err)
		assert.Equal(t, []queries.DriverResponse{
			{ID: "u2", Name: "Adam", Status: "AVAILABLE"},
			{ID: "u1", Name: "Zoe", Status: "AVAILABLE"},
		}, got)
	})

	t.Run("store failure", func(t *testing.T) {
		ctx := t.Context()
		repo := new(MockDriverRepository)
		repo.On("ListByStatus", ctx, driver.Available).
			Return(nil, errs.NewStoreUnavailableError("list drivers", nil)).Once()

		_, err := queries.NewListAvailableDriversQueryHandler(repo).Handle(ctx, queries.NewListAvailableDriversQuery())

		require.ErrorIs(t, err, errs.ErrStoreUnavailable)
		repo.AssertExpectations(t)
	})
}
