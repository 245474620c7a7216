package http

import "github.com/gin-gonic/gin"

// Register mounts the project routes. The group is expected to sit behind
// the session middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListAll)
	rg.GET("/manager", h.ListManaged)
	rg.GET("/member", h.ListMember)
	rg.GET("/archive", h.ListArchive)
	rg.GET("/new", h.NewForm)
	rg.POST("", h.Create)
	rg.GET("/:id", h.View)
	rg.POST("/:id/team", h.AddMember)
	rg.PUT("/:id/poslovi", h.UpdateProgress)
	rg.PUT("/:id/archive", h.ToggleArchive)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/edit", h.EditForm)
	rg.PUT("/:id", h.FullUpdate)
}
