// Package parcel provides the Parcel aggregate and its lifecycle state machine.
//
// The package includes:
//   - Parcel: the aggregate root holding shipment details, status, driver assignment
//     and proof-of-delivery data
//   - Status: the forward-only lifecycle pending -> assigned -> picked_up -> in_transit -> delivered
//
// Key business rules:
//   - A parcel is unassigned iff it is pending and its driver is absent, blank or "UNASSIGNED"
//   - Assigning a driver sets the driver and the assigned status together
//   - Only the immediate next status may be requested; there is no way back
//   - Delivery data (deliveredAt, photo URL) exists only on delivered parcels
//
// The state machine does not know about actor roles. Who may trigger which
// transition is decided by the caller.
package parcel
