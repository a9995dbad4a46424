package api

import (
	"net/http"

	"github.com/Domenick1991/skyfare/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, auth *Auth) {
	user := router.Group("/bookings", auth.RequireUser())
	user.GET("", h.list)
	user.GET("/:id", h.get)
	user.DELETE("/:id", h.cancel)

	admin := router.Group("/admin", auth.RequireUser(), auth.RequireAdmin())
	admin.GET("/bookings", h.listAll)
	admin.GET("/summary", h.summary)
}

func (h *BookingHandler) list(c *gin.Context) {
	views, err := h.service.ListForUser(c.Request.Context(), currentSession(c).User.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) get(c *gin.Context) {
	view, err := h.service.FindBooking(c.Request.Context(), c.Param("id"), currentSession(c).User.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"), currentSession(c).User.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) listAll(c *gin.Context) {
	views, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) summary(c *gin.Context) {
	sum, err := h.service.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
