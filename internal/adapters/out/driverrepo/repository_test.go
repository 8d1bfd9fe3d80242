package driverrepo_test

import (
	"testing"
	"time"

	"dispatch/internal/adapters/out/documentstore/memstore"
	"dispatch/internal/adapters/out/driverrepo"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	store := memstore.New()
	users := map[string]ports.Record{
		"d1": {"role": "driver", "name": "Charlie", "status": "AVAILABLE"},
		"d2": {"role": "driver", "name": "Alice", "status": "AVAILABLE"},
		"d3": {"role": "driver", "name": "Bob", "status": "ON_DELIVERY"},
		"d4": {"role": "driver", "name": "Dana"},
		"x1": {"role": "dispatcher", "name": "Eve", "status": "AVAILABLE"},
	}
	for id, rec := range users {
		require.NoError(t, store.Put(t.Context(), driverrepo.Collection, id, rec))
	}
	return store
}

func TestRepository_ListByStatus(t *testing.T) {
	repo := driverrepo.NewRepository(seed(t), time.Second)

	available, err := repo.ListByStatus(t.Context(), driver.Available)

	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, "Alice", available[0].Name())
	assert.Equal(t, "Charlie", available[1].Name())
	for _, d := range available {
		assert.True(t, d.IsAvailable())
	}
}

func TestRepository_Get(t *testing.T) {
	repo := driverrepo.NewRepository(seed(t), time.Second)

	t.Run("driver", func(t *testing.T) {
		d, err := repo.Get(t.Context(), "d3")
		require.NoError(t, err)
		assert.Equal(t, driver.OnDelivery, d.Status())
	})

	t.Run("legacy record without status is off duty", func(t *testing.T) {
		d, err := repo.Get(t.Context(), "d4")
		require.NoError(t, err)
		assert.Equal(t, driver.OffDuty, d.Status())
	})

	t.Run("non-driver account is not found", func(t *testing.T) {
		_, err := repo.Get(t.Context(), "x1")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("missing account is not found", func(t *testing.T) {
		_, err := repo.Get(t.Context(), "zz")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := repo.Get(t.Context(), " ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestFromRecord(t *testing.T) {
	d, err := driverrepo.FromRecord("d1", ports.Record{"status": "available", "name": 7})

	require.NoError(t, err)
	assert.Equal(t, driver.Available, d.Status())
	assert.Equal(t, "7", d.Name())
}
