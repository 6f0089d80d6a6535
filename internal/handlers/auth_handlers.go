package handlers

import (
	"net/http"

	"roomhub/internal/auth"
	"roomhub/internal/config"
	"roomhub/internal/models"
	"roomhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandlers struct {
	authService *auth.Service
	cfg         *config.Config
}

func NewAuthHandlers(authService *auth.Service, cfg *config.Config) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		cfg:         cfg,
	}
}

func (h *AuthHandlers) LoginPage(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

func (h *AuthHandlers) Login(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		logger.Error("Login error: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandlers) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		logger.Error("Registration error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.setSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, session)
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandlers) loggedIn(c *gin.Context) bool {
	token := tokenFromRequest(c)
	if token == "" {
		return false
	}
	_, err := h.authService.GetUserFromToken(c.Request.Context(), token)
	return err == nil
}

func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.cfg.JWT.ExpiresIn.Seconds())
	c.SetCookie(sessionCookie, token, maxAge, "/", "", false, true)
}
