package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projtrack-app/projtrack-backend/internal/auth/domain"
	"github.com/projtrack-app/projtrack-backend/internal/auth/service"
	"github.com/projtrack-app/projtrack-backend/internal/auth/session"
)

type Handler struct {
	authService *service.AuthService
	sessions    *session.Manager
	cookieName  string
}

func NewHandler(authService *service.AuthService, sessions *session.Manager, cookieName string) *Handler {
	return &Handler{
		authService: authService,
		sessions:    sessions,
		cookieName:  cookieName,
	}
}

// RegisterForm backs the registration page rendered by the view layer
func (h *Handler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": "auth/register"})
}

// RegisterUser creates a user account and sends the browser to the login form
func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid registration data"})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), &service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err == domain.ErrUsernameTaken || err == domain.ErrEmailTaken {
		// Echo the form fields back so the view can preserve the input.
		c.JSON(http.StatusConflict, gin.H{
			"ok":       false,
			"error":    err.Error(),
			"username": req.Username,
			"email":    req.Email,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "registration failed"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm backs the login page rendered by the view layer
func (h *Handler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": "auth/login"})
}

// Login verifies credentials, issues a session and sets the session cookie
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid login data"})
		return
	}

	identity, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err == domain.ErrInvalidCredentials {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "login failed"})
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), identity.UserID, identity.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create session"})
		return
	}

	c.SetCookie(h.cookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/projects")
}

// Logout destroys the session and clears the cookie
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "logout failed"})
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
