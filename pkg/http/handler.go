package http

import "github.com/labstack/echo/v4"

// Handler registers a feature's routes on the shared Echo instance.
// The server owns middleware and the /metrics endpoint; handlers only
// add their own paths.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
