package parcel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() parcel.Details {
	return parcel.Details{
		SenderName:     "Acme Supplies",
		ReceiverName:   "Jane Doe",
		ReceiverPhone:  "+1 555 0100",
		PickupAddress:  "1 Depot Road",
		DropoffAddress: "9 Elm Street",
		PackageDetails: "2 boxes, fragile",
	}
}

func restore(t *testing.T, status parcel.Status, driver string) *parcel.Parcel {
	t.Helper()
	p, err := parcel.RestoreParcel("p1", validDetails(), status, driver, 1_000, nil, nil)
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("creates pending parcel without driver", func(t *testing.T) {
		p, err := parcel.NewParcel(validDetails(), 1_000)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Empty(t, p.ID())
		assert.Equal(t, parcel.Pending, p.Status())
		assert.True(t, p.IsUnassigned())
		assert.Equal(t, kernel.Timestamp(1_000), p.CreatedAt())
		assert.Nil(t, p.DeliveredAt())
		assert.Nil(t, p.DeliveryPhotoURL())
	})

	t.Run("optional fields may be blank", func(t *testing.T) {
		details := validDetails()
		details.ReceiverPhone = ""
		details.PackageDetails = ""

		_, err := parcel.NewParcel(details, 1_000)

		require.NoError(t, err)
	})

	t.Run("reports every missing required field", func(t *testing.T) {
		_, err := parcel.NewParcel(parcel.Details{SenderName: "  "}, 1_000)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"senderName", "receiverName", "pickupAddress", "dropoffAddress"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestRestoreParcel(t *testing.T) {
	t.Run("requires id", func(t *testing.T) {
		_, err := parcel.RestoreParcel(" ", validDetails(), parcel.Pending, "", 1, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := parcel.RestoreParcel("p1", validDetails(), parcel.Status("lost"), "", 1, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("does not validate details", func(t *testing.T) {
		p, err := parcel.RestoreParcel("p1", parcel.Details{}, parcel.Pending, "", 1, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, p.Details().PickupAddress)
	})

	t.Run("drops delivery data on non-delivered parcels", func(t *testing.T) {
		at := kernel.Timestamp(5)
		url := "https://cdn.example.com/x.jpg"

		p, err := parcel.RestoreParcel("p1", validDetails(), parcel.InTransit, "d1", 1, &at, &url)

		require.NoError(t, err)
		assert.Nil(t, p.DeliveredAt())
		assert.Nil(t, p.DeliveryPhotoURL())
	})

	t.Run("keeps delivery data on delivered parcels", func(t *testing.T) {
		at := kernel.Timestamp(5)
		url := "https://cdn.example.com/x.jpg"

		p, err := parcel.RestoreParcel("p1", validDetails(), parcel.Delivered, "d1", 1, &at, &url)

		require.NoError(t, err)
		require.NotNil(t, p.DeliveredAt())
		assert.Equal(t, at, *p.DeliveredAt())
		require.NotNil(t, p.DeliveryPhotoURL())
		assert.Equal(t, url, *p.DeliveryPhotoURL())
	})
}

func TestParcel_IsUnassigned(t *testing.T) {
	testCases := []struct {
		name   string
		status parcel.Status
		driver string
		want   bool
	}{
		{name: "pending with absent driver", status: parcel.Pending, driver: "", want: true},
		{name: "pending with sentinel", status: parcel.Pending, driver: parcel.UnassignedDriver, want: true},
		{name: "pending with blank driver", status: parcel.Pending, driver: "   ", want: true},
		{name: "pending with concrete driver", status: parcel.Pending, driver: "d1", want: false},
		{name: "assigned with absent driver", status: parcel.Assigned, driver: "", want: false},
		{name: "assigned with driver", status: parcel.Assigned, driver: "d1", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := restore(t, tc.status, tc.driver)
			assert.Equal(t, tc.want, p.IsUnassigned())
		})
	}
}

func TestParcel_AssignTo(t *testing.T) {
	t.Run("sets driver and status together", func(t *testing.T) {
		p := restore(t, parcel.Pending, parcel.UnassignedDriver)

		err := p.AssignTo("d1")

		require.NoError(t, err)
		driver, ok := p.AssignedDriver()
		assert.True(t, ok)
		assert.Equal(t, "d1", driver)
		assert.Equal(t, parcel.Assigned, p.Status())
		assert.True(t, p.IsAssignedTo("d1"))
	})

	t.Run("re-assignment overwrites the driver", func(t *testing.T) {
		p := restore(t, parcel.Assigned, "d1")

		require.NoError(t, p.AssignTo("d2"))

		assert.True(t, p.IsAssignedTo("d2"))
		assert.False(t, p.IsAssignedTo("d1"))
		assert.Equal(t, parcel.Assigned, p.Status())
	})

	t.Run("rejects blank and sentinel driver ids", func(t *testing.T) {
		for _, driverID := range []string{"", "  ", parcel.UnassignedDriver} {
			p := restore(t, parcel.Pending, "")
			err := p.AssignTo(driverID)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Equal(t, parcel.Pending, p.Status())
			assert.False(t, p.HasDriver())
		}
	})

	t.Run("rejects parcels already picked up", func(t *testing.T) {
		p := restore(t, parcel.PickedUp, "d1")

		err := p.AssignTo("d2")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.True(t, p.IsAssignedTo("d1"))
		assert.Equal(t, parcel.PickedUp, p.Status())
	})
}

func TestParcel_Advance(t *testing.T) {
	t.Run("picked_up accepts only in_transit", func(t *testing.T) {
		for _, to := range []parcel.Status{parcel.Pending, parcel.Delivered, parcel.PickedUp, parcel.Assigned} {
			p := restore(t, parcel.PickedUp, "d1")
			err := p.Advance(to, 2_000, nil)
			require.ErrorIs(t, err, errs.ErrInvalidTransition, "to %s", to)
			assert.Equal(t, parcel.PickedUp, p.Status())
		}

		p := restore(t, parcel.PickedUp, "d1")
		require.NoError(t, p.Advance(parcel.InTransit, 2_000, nil))
		assert.Equal(t, parcel.InTransit, p.Status())
		assert.Nil(t, p.DeliveredAt())
	})

	t.Run("delivered records timestamp and photo", func(t *testing.T) {
		p := restore(t, parcel.InTransit, "d1")
		url := " https://cdn.example.com/pod/p1.jpg "

		err := p.Advance(parcel.Delivered, 2_000, &url)

		require.NoError(t, err)
		assert.Equal(t, parcel.Delivered, p.Status())
		require.NotNil(t, p.DeliveredAt())
		assert.Equal(t, kernel.Timestamp(2_000), *p.DeliveredAt())
		require.NotNil(t, p.DeliveryPhotoURL())
		assert.Equal(t, "https://cdn.example.com/pod/p1.jpg", *p.DeliveryPhotoURL())
	})

	t.Run("delivered without photo", func(t *testing.T) {
		p := restore(t, parcel.InTransit, "d1")

		require.NoError(t, p.Advance(parcel.Delivered, 2_000, nil))

		assert.NotNil(t, p.DeliveredAt())
		assert.Nil(t, p.DeliveryPhotoURL())
	})

	t.Run("photo is ignored on earlier transitions", func(t *testing.T) {
		p := restore(t, parcel.Assigned, "d1")
		url := "https://cdn.example.com/x.jpg"

		require.NoError(t, p.Advance(parcel.PickedUp, 2_000, &url))

		assert.Nil(t, p.DeliveredAt())
		assert.Nil(t, p.DeliveryPhotoURL())
	})

	t.Run("pending to assigned needs a driver on the record", func(t *testing.T) {
		p := restore(t, parcel.Pending, parcel.UnassignedDriver)
		err := p.Advance(parcel.Assigned, 2_000, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, parcel.Pending, p.Status())

		legacy := restore(t, parcel.Pending, "d1")
		require.NoError(t, legacy.Advance(parcel.Assigned, 2_000, nil))
		assert.Equal(t, parcel.Assigned, legacy.Status())
	})

	t.Run("walks the whole lifecycle", func(t *testing.T) {
		p, err := parcel.NewParcel(validDetails(), 1_000)
		require.NoError(t, err)

		require.NoError(t, p.AssignTo("d1"))
		require.NoError(t, p.Advance(parcel.PickedUp, 1_100, nil))
		require.NoError(t, p.Advance(parcel.InTransit, 1_200, nil))
		require.NoError(t, p.Advance(parcel.Delivered, 1_300, nil))

		err = p.Advance(parcel.Delivered, 1_400, nil)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, kernel.Timestamp(1_300), *p.DeliveredAt())
	})
}

func TestParcel_Accessors(t *testing.T) {
	t.Run("delivery accessors return copies", func(t *testing.T) {
		p := restore(t, parcel.InTransit, "d1")
		url := "https://cdn.example.com/x.jpg"
		require.NoError(t, p.Advance(parcel.Delivered, 2_000, &url))

		at := p.DeliveredAt()
		*at = 0
		photo := p.DeliveryPhotoURL()
		*photo = "changed"

		assert.Equal(t, kernel.Timestamp(2_000), *p.DeliveredAt())
		assert.Equal(t, url, *p.DeliveryPhotoURL())
	})

	t.Run("WithID sets the store id on a copy", func(t *testing.T) {
		p, err := parcel.NewParcel(validDetails(), 1_000)
		require.NoError(t, err)

		saved, err := p.WithID("abc")

		require.NoError(t, err)
		assert.Equal(t, "abc", saved.ID())
		assert.Empty(t, p.ID())

		_, err = p.WithID("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p parcel.Parcel
		require.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)

		var nilParcel *parcel.Parcel
		require.ErrorIs(t, nilParcel.Validate(), parcel.ErrParcelIsNotConstructed)
	})
}
