package api

import (
	"net/http"

	"github.com/Domenick1991/skyfare/internal/service/payment"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	service payment.PaymentUseCase
}

func NewCheckoutHandler(service payment.PaymentUseCase) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) Register(router *gin.RouterGroup, auth *Auth) {
	router.POST("/checkout", auth.RequireUser(), h.checkout)
}

func (h *CheckoutHandler) checkout(c *gin.Context) {
	var req payment.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.UserID = currentSession(c).User.ID

	booking, err := h.service.Checkout(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}
