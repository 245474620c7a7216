package http

import "github.com/gin-gonic/gin"

// Register mounts the auth routes at the engine root
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.RegisterUser)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}
