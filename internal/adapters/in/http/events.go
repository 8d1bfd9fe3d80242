package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"dispatch/internal/core/application/views"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StreamView handles GET /api/v1/views/{view}/events.
//
// Each event replaces the previous projection entirely. Dispatcher views are
// open to dispatchers and admins. The driver view shows the caller's own
// parcels; staff pass the driver in the driverId query parameter.
//
// @Summary Stream a live view
// @Description Server-sent events: loading, then success or error on every upstream change.
// @Tags views
// @Produce text/event-stream
// @Security BearerAuth
// @Param view path string true "dispatcher-new, dispatcher-assigned or driver"
// @Param driverId query string false "Driver ID for staff watching the driver view"
// @Success 200 {object} ViewEvent
// @Failure 403 {object} Error
// @Failure 404 {object} Error
// @Router /views/{view}/events [get]
func (s *Server) StreamView(c echo.Context, name string) error {
	actor, ok := ActorFrom(c)
	if !ok {
		return ErrUnauthenticated
	}

	driverID, err := viewTarget(actor, name, c.QueryParam("driverId"))
	if err != nil {
		return err
	}

	view, err := s.views(name, driverID)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	states := make(chan views.State, 8)
	sub, err := view.Subscribe(ctx, func(st views.State) {
		select {
		case states <- st:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}
	defer sub.Cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case st := <-states:
			if err = writeEvent(res, st); err != nil {
				s.logger.Debug("event stream closed", zap.String("view", name), zap.Error(err))
				return nil
			}
		case <-sub.Done():
			for {
				select {
				case st := <-states:
					_ = writeEvent(res, st)
				default:
					return nil
				}
			}
		}
	}
}

func viewTarget(actor Actor, name, requestedDriver string) (string, error) {
	staff := []Role{RoleDispatcher, RoleAdmin}

	switch name {
	case views.DispatcherNew, views.DispatcherAssigned:
		if !slices.Contains(staff, actor.Role) {
			return "", fmt.Errorf("%w: view %s", ErrForbidden, name)
		}
		return "", nil
	case views.Driver:
		if actor.Role == RoleDriver {
			return actor.ID, nil
		}
		return requestedDriver, nil
	default:
		return "", echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown view %q", name))
	}
}

func writeEvent(res *echo.Response, st views.State) error {
	event := ViewEvent{State: st.Kind.String(), Message: st.Message}
	if st.Kind == views.Success {
		event.Parcels = fromAggregates(st.Parcels)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event.State, payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}
