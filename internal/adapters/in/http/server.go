package http

import (
	"fmt"
	"io"
	"net/http"

	"dispatch/internal/adapters/out/photostorage"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/application/views"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var _ ServerInterface = (*Server)(nil)

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateParcel         commands.CreateParcelCommandHandler
	AssignDriver         commands.AssignDriverCommandHandler
	AdvanceParcelStatus  commands.AdvanceParcelStatusCommandHandler
	RecordDelivery       commands.RecordDeliveryCommandHandler
	GetParcel            queries.GetParcelQueryHandler
	ListUnassigned       queries.ListUnassignedParcelsQueryHandler
	ListAssigned         queries.ListAssignedParcelsQueryHandler
	ListDriverParcels    queries.ListDriverParcelsQueryHandler
	ListAvailableDrivers queries.ListAvailableDriversQueryHandler
}

// ViewFactory builds the live view named name. driverID is only used for the
// driver view.
type ViewFactory func(name, driverID string) (*views.View, error)

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	views    ViewFactory
	logger   *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, viewFactory ViewFactory, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		views:    viewFactory,
		logger:   logger,
	}
}

// CreateParcel handles POST /api/v1/parcels.
//
// @Summary Create a parcel
// @Description Creates a pending parcel with no driver.
// @Tags parcels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NewParcel true "Shipment description"
// @Success 201 {object} Created
// @Failure 400 {object} Error
// @Failure 503 {object} Error
// @Router /parcels [post]
func (s *Server) CreateParcel(c echo.Context) error {
	var body NewParcel
	if err := c.Bind(&body); err != nil {
		return err
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateParcelCommand(parcel.Details{
		SenderName:     body.SenderName,
		ReceiverName:   body.ReceiverName,
		ReceiverPhone:  body.ReceiverPhone,
		PickupAddress:  body.PickupAddress,
		DropoffAddress: body.DropoffAddress,
		PackageDetails: body.PackageDetails,
	})
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, Created{ID: created.ID()})
}

// ListUnassignedParcels handles GET /api/v1/parcels/unassigned.
//
// @Summary List unassigned parcels
// @Description Pending parcels without a driver, newest first.
// @Tags parcels
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Parcel
// @Failure 503 {object} Error
// @Router /parcels/unassigned [get]
func (s *Server) ListUnassignedParcels(c echo.Context) error {
	found, err := s.handlers.ListUnassigned.Handle(c.Request().Context(), queries.NewListUnassignedParcelsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcels(found))
}

// ListAssignedParcels handles GET /api/v1/parcels/assigned.
//
// @Summary List assigned parcels
// @Description Parcels with a driver, newest first, plus the same parcels grouped per driver.
// @Tags parcels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AssignedParcels
// @Failure 503 {object} Error
// @Router /parcels/assigned [get]
func (s *Server) ListAssignedParcels(c echo.Context) error {
	found, err := s.handlers.ListAssigned.Handle(c.Request().Context(), queries.NewListAssignedParcelsQuery())
	if err != nil {
		return err
	}

	groups := make([]DriverGroup, 0, len(found.Groups))
	for _, g := range found.Groups {
		groups = append(groups, DriverGroup{DriverID: g.DriverID, Parcels: toParcels(g.Parcels)})
	}
	return c.JSON(http.StatusOK, AssignedParcels{Parcels: toParcels(found.Parcels), Groups: groups})
}

// GetParcel handles GET /api/v1/parcels/{parcelId}. Drivers only see their own parcels.
//
// @Summary Get a parcel
// @Tags parcels
// @Produce json
// @Security BearerAuth
// @Param parcelId path string true "Parcel ID"
// @Success 200 {object} Parcel
// @Failure 403 {object} Error
// @Failure 404 {object} Error
// @Router /parcels/{parcelId} [get]
func (s *Server) GetParcel(c echo.Context, parcelID string) error {
	found, err := s.loadForActor(c, parcelID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcel(found))
}

// AssignDriver handles POST /api/v1/parcels/{parcelId}/assignment.
//
// @Summary Assign a driver
// @Description Sets the driver and moves the parcel to assigned in one write. Re-assignment overwrites.
// @Tags parcels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param parcelId path string true "Parcel ID"
// @Param body body Assignment true "Driver"
// @Success 200 {object} Parcel
// @Failure 400 {object} Error
// @Failure 404 {object} Error
// @Failure 409 {object} Error
// @Router /parcels/{parcelId}/assignment [post]
func (s *Server) AssignDriver(c echo.Context, parcelID string) error {
	var body Assignment
	if err := c.Bind(&body); err != nil {
		return err
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(parcelID, body.DriverID)
	if err != nil {
		return err
	}

	assigned, err := s.handlers.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromAggregate(assigned))
}

// AdvanceParcelStatus handles POST /api/v1/parcels/{parcelId}/status.
//
// @Summary Advance the parcel status
// @Description Moves the parcel to the next status. Drivers may only advance their own parcels.
// @Tags parcels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param parcelId path string true "Parcel ID"
// @Param body body StatusChange true "Requested status"
// @Success 200 {object} Parcel
// @Failure 400 {object} Error
// @Failure 403 {object} Error
// @Failure 404 {object} Error
// @Failure 409 {object} Error
// @Router /parcels/{parcelId}/status [post]
func (s *Server) AdvanceParcelStatus(c echo.Context, parcelID string) error {
	var body StatusChange
	if err := c.Bind(&body); err != nil {
		return err
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceParcelStatusCommand(parcelID, body.Status, body.DeliveryPhotoURL)
	if err != nil {
		return err
	}

	if _, err = s.loadForActor(c, cmd.ParcelID()); err != nil {
		return err
	}

	updated, err := s.handlers.AdvanceParcelStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromAggregate(updated))
}

// RecordDelivery handles POST /api/v1/parcels/{parcelId}/delivery.
//
// @Summary Deliver with a photo
// @Description Uploads the proof-of-delivery photo and moves the parcel from in_transit to delivered.
// @Tags parcels
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param parcelId path string true "Parcel ID"
// @Param photo formData file true "Proof-of-delivery image"
// @Success 200 {object} Parcel
// @Failure 400 {object} Error
// @Failure 403 {object} Error
// @Failure 409 {object} Error
// @Failure 503 {object} Error
// @Router /parcels/{parcelId}/delivery [post]
func (s *Server) RecordDelivery(c echo.Context, parcelID string) error {
	header, err := c.FormFile("photo")
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause("photo", err)
	}
	if header.Size > photostorage.MaxPhotoSize {
		return errs.NewValueIsInvalidErrorWithCause("photo", fmt.Errorf("larger than %d bytes", photostorage.MaxPhotoSize))
	}

	file, err := header.Open()
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("photo", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, photostorage.MaxPhotoSize+1))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("photo", err)
	}

	cmd, err := commands.NewRecordDeliveryCommand(parcelID, header.Header.Get(echo.HeaderContentType), data)
	if err != nil {
		return err
	}

	if _, err = s.loadForActor(c, cmd.ParcelID()); err != nil {
		return err
	}

	delivered, err := s.handlers.RecordDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromAggregate(delivered))
}

// ListMyParcels handles GET /api/v1/drivers/me/parcels.
//
// @Summary List my parcels
// @Description The calling driver's parcels in any status, newest first.
// @Tags drivers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Parcel
// @Router /drivers/me/parcels [get]
func (s *Server) ListMyParcels(c echo.Context) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return ErrUnauthenticated
	}
	return s.listDriverParcels(c, actor.ID)
}

// ListDriverParcels handles GET /api/v1/drivers/{driverId}/parcels.
//
// @Summary List a driver's parcels
// @Tags drivers
// @Produce json
// @Security BearerAuth
// @Param driverId path string true "Driver ID"
// @Success 200 {array} Parcel
// @Router /drivers/{driverId}/parcels [get]
func (s *Server) ListDriverParcels(c echo.Context, driverID string) error {
	return s.listDriverParcels(c, driverID)
}

// ListAvailableDrivers handles GET /api/v1/drivers/available.
//
// @Summary List available drivers
// @Description Drivers in AVAILABLE status, by name.
// @Tags drivers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Driver
// @Router /drivers/available [get]
func (s *Server) ListAvailableDrivers(c echo.Context) error {
	found, err := s.handlers.ListAvailableDrivers.Handle(c.Request().Context(), queries.NewListAvailableDriversQuery())
	if err != nil {
		return err
	}

	out := make([]Driver, 0, len(found))
	for _, d := range found {
		out = append(out, Driver{ID: d.ID, Name: d.Name, Status: d.Status})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listDriverParcels(c echo.Context, driverID string) error {
	query, err := queries.NewListDriverParcelsQuery(driverID)
	if err != nil {
		return err
	}

	found, err := s.handlers.ListDriverParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcels(found))
}

// loadForActor reads the parcel and rejects drivers that do not hold it.
func (s *Server) loadForActor(c echo.Context, parcelID string) (queries.ParcelResponse, error) {
	actor, ok := ActorFrom(c)
	if !ok {
		return queries.ParcelResponse{}, ErrUnauthenticated
	}

	query, err := queries.NewGetParcelQuery(parcelID)
	if err != nil {
		return queries.ParcelResponse{}, err
	}

	found, err := s.handlers.GetParcel.Handle(c.Request().Context(), query)
	if err != nil {
		return queries.ParcelResponse{}, err
	}

	if actor.Role == RoleDriver && found.AssignedDriver != actor.ID {
		return queries.ParcelResponse{}, fmt.Errorf("%w: parcel %s is not assigned to you", ErrForbidden, parcelID)
	}
	return found, nil
}
