package queries_test

import (
	"testing"

	"dispatch/internal/adapters/out/parcelrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAssignedParcelsQueryHandler_Handle(t *testing.T) {
	// Given
	f := newFixture(t)
	f.putParcel(t, "p1", ports.Record{
		parcelrepo.FieldStatus:         "assigned",
		parcelrepo.FieldAssignedDriver: "d-2",
		parcelrepo.FieldCreatedAt:      100,
	})
	f.putParcel(t, "p2", ports.Record{
		parcelrepo.FieldStatus:         "delivered",
		parcelrepo.FieldAssignedDriver: "d-1",
		parcelrepo.FieldCreatedAt:      300,
		parcelrepo.FieldDeliveredAt:    350,
	})
	f.putParcel(t, "p3", ports.Record{
		parcelrepo.FieldStatus:    "picked up",
		"driverId":                "d-1",
		parcelrepo.FieldCreatedAt: 100,
	})
	f.putParcel(t, "p4", ports.Record{
		parcelrepo.FieldStatus:         "pending",
		parcelrepo.FieldAssignedDriver: "UNASSIGNED",
		parcelrepo.FieldCreatedAt:      900,
	})

	h := queries.NewListAssignedParcelsQueryHandler(f.parcels)

	// When
	got, err := h.Handle(t.Context(), queries.NewListAssignedParcelsQuery())

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(got.Parcels))

	require.Len(t, got.Groups, 2)
	assert.Equal(t, "d-1", got.Groups[0].DriverID)
	assert.Equal(t, []string{"p2", "p3"}, ids(got.Groups[0].Parcels))
	assert.Equal(t, "d-2", got.Groups[1].DriverID)
	assert.Equal(t, []string{"p1"}, ids(got.Groups[1].Parcels))

	delivered := got.Parcels[0]
	assert.Equal(t, "delivered", delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, int64(350), *delivered.DeliveredAt)
	assert.Equal(t, "picked_up", got.Parcels[1].Status)
}

func TestListAssignedParcelsQueryHandler_Handle_Empty(t *testing.T) {
	f := newFixture(t)

	got, err := queries.NewListAssignedParcelsQueryHandler(f.parcels).
		Handle(t.Context(), queries.NewListAssignedParcelsQuery())

	require.NoError(t, err)
	assert.Empty(t, got.Parcels)
	assert.Empty(t, got.Groups)
}
