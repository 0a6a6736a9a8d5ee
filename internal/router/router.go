// package router defines how HTTP routes are registered for the API
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/food-waste-saver/internal/handler"
)

// RegisterRoutes wires the public API surface onto the provided Echo
// instance:
//
//	GET  /             – banner message
//	GET  /healthz      – liveness probe for load balancers
//	GET  /offers       – active offers, filterable by ?city= and ?tag=
//	POST /offers       – create an offer
//	POST /reservations – reserve one bag, returning a pickup code
//	GET  /test         – backing-store diagnostics
//
// cached, when non-nil, is applied to the offer listing only; the
// write endpoints must always reach the handlers.
func RegisterRoutes(e *echo.Echo, offers *handler.OfferHandler, reservations *handler.ReservationHandler, diag *handler.DiagnosticsHandler, cached echo.MiddlewareFunc) {
    e.GET("/", handler.Root)
    e.GET("/healthz", handler.Health)

    if cached != nil {
        e.GET("/offers", offers.List, cached)
    } else {
        e.GET("/offers", offers.List)
    }
    e.POST("/offers", offers.Create)
    e.POST("/reservations", reservations.Create)
    e.GET("/test", diag.Test)
}
