package api

import (
	"net/http"

	"github.com/Domenick1991/skyfare/internal/service/account"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts account.AccountUseCase
}

func NewAuthHandler(accounts account.AccountUseCase) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Register(router *gin.RouterGroup, auth *Auth) {
	router.POST("/signup", h.signup)
	router.POST("/login", h.login)

	protected := router.Group("", auth.RequireUser())
	protected.POST("/logout", h.logout)
	protected.POST("/session", h.session)
	protected.GET("/me", h.me)
	protected.PUT("/profile", h.updateProfile)
}

func (h *AuthHandler) signup(c *gin.Context) {
	var req account.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.accounts.Signup(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req account.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context(), bearer(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// session is the keep-alive ping; RequireUser has already slid the deadline.
func (h *AuthHandler) session(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c))
}

func (h *AuthHandler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c))
}

func (h *AuthHandler) updateProfile(c *gin.Context) {
	var req account.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.accounts.UpdateProfile(c.Request.Context(), currentSession(c).User.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
