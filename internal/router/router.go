// Package router wires the directory handlers onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/venue-booking-directory/internal/handler"
)

// RegisterRoutes registers the operational endpoints.  /healthz is a
// liveness probe, /readyz also pings the database and /metrics serves the
// Prometheus exposition.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterDirectory registers the venue, artist and show pages on a group
// carrying mw, typically the response cache.  The operational endpoints stay
// outside it so readiness and metrics are always computed live.  Static
// segments such as /venues/create win over /venues/:id.
func RegisterDirectory(e *echo.Echo, h *handler.DirectoryHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("")
	g.Use(mw...)

	g.GET("/", h.Home)

	g.GET("/venues", h.Venues)
	g.POST("/venues/search", h.SearchVenues)
	g.GET("/venues/create", h.CreateVenueForm)
	g.POST("/venues/create", h.CreateVenue)
	g.GET("/venues/:id", h.ShowVenue)
	g.DELETE("/venues/:id", h.DeleteVenue)
	g.GET("/venues/:id/edit", h.EditVenueForm)
	g.POST("/venues/:id/edit", h.EditVenue)

	g.GET("/artists", h.Artists)
	g.POST("/artists/search", h.SearchArtists)
	g.GET("/artists/create", h.CreateArtistForm)
	g.POST("/artists/create", h.CreateArtist)
	g.GET("/artists/:id", h.ShowArtist)
	g.GET("/artists/:id/edit", h.EditArtistForm)
	g.POST("/artists/:id/edit", h.EditArtist)

	g.GET("/shows", h.Shows)
	g.GET("/shows/create", h.CreateShowForm)
	g.POST("/shows/create", h.CreateShow)
}
