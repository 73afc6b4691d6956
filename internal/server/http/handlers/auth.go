package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thermopolio/thermopolio/internal/server/http/dto"
	"github.com/thermopolio/thermopolio/internal/server/http/middleware"
)

// AuthHandler processes registration, login and session endpoints.
type AuthHandler struct {
	facade AuthFacade
	cookie middleware.SessionCookie
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{facade: facade, cookie: cookie}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Registration())
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookie.Set(c, token)
	resp := dto.NewUserResponse(*user)
	c.JSON(http.StatusCreated, dto.Response{Success: true, Message: "Registrazione completata", User: &resp})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookie.Set(c, token)
	resp := dto.NewUserResponse(*user)
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Login effettuato", User: &resp})
}

// Logout handles POST /api/auth/logout. It succeeds without a session too.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.Token(c); token != "" {
		if err := h.facade.Logout(c.Request.Context(), token); err != nil {
			writeError(c, err)
			return
		}
	}
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Logout effettuato"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.facade.CurrentUser(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := dto.NewUserResponse(*user)
	c.JSON(http.StatusOK, dto.Response{Success: true, User: &resp})
}
