package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the API operations.
type ServerInterface interface {
	// (POST /parcels)
	CreateParcel(ctx echo.Context) error
	// (GET /parcels/unassigned)
	ListUnassignedParcels(ctx echo.Context) error
	// (GET /parcels/assigned)
	ListAssignedParcels(ctx echo.Context) error
	// (GET /parcels/{parcelId})
	GetParcel(ctx echo.Context, parcelID string) error
	// (POST /parcels/{parcelId}/assignment)
	AssignDriver(ctx echo.Context, parcelID string) error
	// (POST /parcels/{parcelId}/status)
	AdvanceParcelStatus(ctx echo.Context, parcelID string) error
	// (POST /parcels/{parcelId}/delivery)
	RecordDelivery(ctx echo.Context, parcelID string) error
	// (GET /drivers/me/parcels)
	ListMyParcels(ctx echo.Context) error
	// (GET /drivers/available)
	ListAvailableDrivers(ctx echo.Context) error
	// (GET /drivers/{driverId}/parcels)
	ListDriverParcels(ctx echo.Context, driverID string) error
	// (GET /views/{view}/events)
	StreamView(ctx echo.Context, view string) error
}

// ServerInterfaceWrapper binds path parameters before calling the server.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	parcelID, err := bindPath(ctx, "parcelId")
	if err != nil {
		return err
	}
	return w.Handler.GetParcel(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	parcelID, err := bindPath(ctx, "parcelId")
	if err != nil {
		return err
	}
	return w.Handler.AssignDriver(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) AdvanceParcelStatus(ctx echo.Context) error {
	parcelID, err := bindPath(ctx, "parcelId")
	if err != nil {
		return err
	}
	return w.Handler.AdvanceParcelStatus(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) RecordDelivery(ctx echo.Context) error {
	parcelID, err := bindPath(ctx, "parcelId")
	if err != nil {
		return err
	}
	return w.Handler.RecordDelivery(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) ListDriverParcels(ctx echo.Context) error {
	driverID, err := bindPath(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.ListDriverParcels(ctx, driverID)
}

func (w *ServerInterfaceWrapper) StreamView(ctx echo.Context) error {
	view, err := bindPath(ctx, "view")
	if err != nil {
		return err
	}
	return w.Handler.StreamView(ctx, view)
}

// RegisterHandlers mounts the API under baseURL. Every route requires a
// bearer token; role checks are per route.
func RegisterHandlers(router *echo.Echo, si ServerInterface, baseURL string, auth AuthConfig) {
	w := ServerInterfaceWrapper{Handler: si}

	api := router.Group(baseURL, Authenticate(auth))
	staff := RequireRoles(RoleDispatcher, RoleAdmin)
	courier := RequireRoles(RoleDriver, RoleAdmin)
	anyone := RequireRoles(RoleDriver, RoleDispatcher, RoleAdmin)

	api.POST("/parcels", si.CreateParcel, staff)
	api.GET("/parcels/unassigned", si.ListUnassignedParcels, staff)
	api.GET("/parcels/assigned", si.ListAssignedParcels, staff)
	api.GET("/parcels/:parcelId", w.GetParcel, anyone)
	api.POST("/parcels/:parcelId/assignment", w.AssignDriver, staff)
	api.POST("/parcels/:parcelId/status", w.AdvanceParcelStatus, courier)
	api.POST("/parcels/:parcelId/delivery", w.RecordDelivery, courier)
	api.GET("/drivers/me/parcels", si.ListMyParcels, RequireRoles(RoleDriver))
	api.GET("/drivers/available", si.ListAvailableDrivers, staff)
	api.GET("/drivers/:driverId/parcels", w.ListDriverParcels, staff)
	api.GET("/views/:view/events", w.StreamView, anyone)
}
