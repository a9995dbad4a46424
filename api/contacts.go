package api

import (
	"net/http"

	"github.com/Domenick1991/skyfare/internal/service/contact"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service contact.ContactUseCase
}

func NewContactHandler(service contact.ContactUseCase) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Register(router *gin.RouterGroup, auth *Auth) {
	router.POST("/contacts", auth.Optional(), h.submit)
	router.GET("/admin/contacts", auth.RequireUser(), auth.RequireAdmin(), h.list)
}

func (h *ContactHandler) submit(c *gin.Context) {
	var req contact.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if sess := currentSession(c); sess != nil {
		id := sess.User.ID
		req.UserID = &id
	}

	msg, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ContactHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
