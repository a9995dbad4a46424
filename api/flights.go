package api

import (
	"net/http"

	"github.com/Domenick1991/skyfare/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, auth *Auth) {
	router.GET("", h.list)
	router.GET("/:id", h.get)

	admin := router.Group("", auth.RequireUser(), auth.RequireAdmin())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flights.FlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

// update merges the body into the flight at :id. An unknown id is a no-op
// in the inventory, so the handler reports it as not found.
func (h *FlightHandler) update(c *gin.Context) {
	var req flights.FlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.ID = c.Param("id")

	ctx := c.Request.Context()
	if _, err := h.service.GetByID(ctx, req.ID); err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.Edit(ctx, req); err != nil {
		writeError(c, err)
		return
	}
	flight, err := h.service.GetByID(ctx, req.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
