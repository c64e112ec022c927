// Package routes mounts the HTTP handlers on an echo instance.
package routes

import (
	"rfqengine/cmd/internal/http/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Requests *handler.DefaultRequestRoute
	Leads    *handler.DefaultLeadRoute
	Catalog  *handler.DefaultCatalogRoute

	// Auth guards every route outside the public RFQ form.
	Auth echo.MiddlewareFunc
}

func Register(e *echo.Echo, h *Handlers) {
	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Client RFQ form
	api.POST("/requests", h.Requests.CreateRequest)
	api.GET("/requests/:id", h.Requests.GetRequest)

	admin := api.Group("", h.Auth)

	// Requests
	admin.GET("/requests", h.Requests.GetRequests)
	admin.PATCH("/requests/:id", h.Requests.UpdateRequest)
	admin.DELETE("/requests/:id", h.Requests.DeleteRequest)
	admin.POST("/requests/:id/lines", h.Requests.AddLine)
	admin.POST("/requests/:id/quotes", h.Requests.SubmitQuote)
	admin.GET("/requests/:id/quotes", h.Requests.GetQuoteLog)
	admin.POST("/requests/:id/refresh-prices", h.Requests.RefreshPrices)

	// Leads
	admin.GET("/leads", h.Leads.GetLeads)
	admin.POST("/leads", h.Leads.CreateLead)
	admin.GET("/leads/:id", h.Leads.GetLead)
	admin.PATCH("/leads/:id", h.Leads.UpdateLead)
	admin.DELETE("/leads/:id", h.Leads.DeleteLead)

	// Catalog helpers
	admin.GET("/materials/:id/suppliers/ranked", h.Catalog.RankSuppliers)
	admin.GET("/materials/:id/estimate", h.Catalog.Estimate)
	admin.POST("/pricing/markup", h.Catalog.Markup)
}
