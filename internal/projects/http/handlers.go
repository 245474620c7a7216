package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projtrack-app/projtrack-backend/internal/auth"
	"github.com/projtrack-app/projtrack-backend/internal/projects/domain"
	"github.com/projtrack-app/projtrack-backend/internal/projects/service"
)

var errInvalidDate = errors.New("invalid date format")

type Handler struct {
	svc *service.ProjectService
}

func NewHandler(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

// ListAll returns every active project the caller manages or participates in
func (h *Handler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context(), auth.CurrentIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// ListManaged returns the caller's active projects as manager
func (h *Handler) ListManaged(c *gin.Context) {
	items, err := h.svc.ListManaged(c.Request.Context(), auth.CurrentIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// ListMember returns the caller's active projects as team member
func (h *Handler) ListMember(c *gin.Context) {
	items, err := h.svc.ListMember(c.Request.Context(), auth.CurrentIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// ListArchive returns the archived projects the caller is involved in
func (h *Handler) ListArchive(c *gin.Context) {
	items, err := h.svc.ListArchive(c.Request.Context(), auth.CurrentIdentity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// NewForm backs the new-project page rendered by the view layer
func (h *Handler) NewForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": "projects/new"})
}

// Create adds a project with the caller as manager
func (h *Handler) Create(c *gin.Context) {
	req, upd, ok := h.bindProjectForm(c)
	if !ok {
		return
	}

	_, err := h.svc.Create(c.Request.Context(), auth.CurrentIdentity(c), &service.CreateRequest{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ProgressNotes: req.ProgressNotes,
		StartDate:     upd.StartDate,
		EndDate:       upd.EndDate,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects/manager")
}

// View returns the project detail with the team resolved to user records
func (h *Handler) View(c *gin.Context) {
	detail, err := h.svc.View(c.Request.Context(), auth.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "detail": detail})
}

// AddMember appends a user to the project team (manager only)
func (h *Handler) AddMember(c *gin.Context) {
	var req addMemberReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "user_id is required"})
		return
	}

	id := c.Param("id")
	if err := h.svc.AddMember(c.Request.Context(), auth.CurrentIdentity(c), id, req.UserID); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects/"+id)
}

// UpdateProgress sets the progress notes (manager or member)
func (h *Handler) UpdateProgress(c *gin.Context) {
	var req progressReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id := c.Param("id")
	if err := h.svc.UpdateProgress(c.Request.Context(), auth.CurrentIdentity(c), id, req.ProgressNotes); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects/"+id)
}

// ToggleArchive flips the archived flag (manager only)
func (h *Handler) ToggleArchive(c *gin.Context) {
	if _, err := h.svc.ToggleArchive(c.Request.Context(), auth.CurrentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/projects/archive")
}

// Delete permanently removes the project (manager only)
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.CurrentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/projects/manager")
}

// EditForm backs the edit page; the guard check runs before any form is shown
func (h *Handler) EditForm(c *gin.Context) {
	p, err := h.svc.EditInfo(c.Request.Context(), auth.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

// FullUpdate overwrites the editable fields (manager only)
func (h *Handler) FullUpdate(c *gin.Context) {
	req, upd, ok := h.bindProjectForm(c)
	if !ok {
		return
	}
	upd.Name = req.Name
	upd.Description = req.Description
	upd.Price = req.Price
	upd.ProgressNotes = req.ProgressNotes

	id := c.Param("id")
	if _, err := h.svc.FullUpdate(c.Request.Context(), auth.CurrentIdentity(c), id, upd); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/projects/"+id)
}

func (h *Handler) bindProjectForm(c *gin.Context) (projectForm, domain.ProjectUpdate, bool) {
	var req projectForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name is required"})
		return req, domain.ProjectUpdate{}, false
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid start_date"})
		return req, domain.ProjectUpdate{}, false
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid end_date"})
		return req, domain.ProjectUpdate{}, false
	}

	return req, domain.ProjectUpdate{StartDate: start, EndDate: end}, true
}

// fail maps domain errors to HTTP responses. Authorization failures are
// never downgraded; store failures surface as a generic server error.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "insufficient permissions"})
	case errors.Is(err, domain.ErrUnknownMember):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown user id"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
