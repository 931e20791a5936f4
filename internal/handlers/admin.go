package handlers

import (
	"net/http"

	"innovation_showcase/internal/models"
	"innovation_showcase/internal/service"

	"github.com/gin-gonic/gin"
)

// SetStatusRequest is the moderation payload.
type SetStatusRequest struct {
	// Allowed: pending, approved, rejected
	Status string `json:"status" binding:"required" example:"approved"`
}

// @Summary      List all projects
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(pending,approved,rejected)
// @Success      200     {array}   models.Project
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/admin/projects [get]
// @Security     BearerAuth
func (h *Handler) listAll(c *gin.Context) {
	status := c.Query("status")
	projects, err := h.services.ListAll(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, "admin_projects_list_failed", err, "status", status)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// @Summary      List pending projects
// @Tags         admin
// @Produce      json
// @Success      200  {array}   models.Project
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/admin/pending [get]
// @Security     BearerAuth
func (h *Handler) listPending(c *gin.Context) {
	projects, err := h.services.ListAll(c.Request.Context(), string(models.StatusPending))
	if err != nil {
		h.respondError(c, "admin_pending_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// @Summary      Approve project
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/admin/approve/{id} [put]
// @Security     BearerAuth
func (h *Handler) approve(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.Approve(c.Request.Context(), id, requesterID(c), requesterRole(c))
	h.respondModeration(c, p, err, id, models.StatusApproved)
}

// @Summary      Reject project
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/admin/reject/{id} [put]
// @Security     BearerAuth
func (h *Handler) reject(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.Reject(c.Request.Context(), id, requesterID(c), requesterRole(c))
	h.respondModeration(c, p, err, id, models.StatusRejected)
}

// @Summary      Set project status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Project ID"
// @Param        body  body      SetStatusRequest  true  "New status"
// @Success      200   {object}  models.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/admin/projects/{id}/status [put]
// @Security     BearerAuth
func (h *Handler) setStatus(c *gin.Context) {
	var req SetStatusRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id := c.Param("id")
	p, err := h.services.SetStatus(c.Request.Context(), service.ModerationInput{
		ProjectID:     id,
		Status:        req.Status,
		RequesterID:   requesterID(c),
		RequesterRole: requesterRole(c),
	})
	h.respondModeration(c, p, err, id, models.ProjectStatus(req.Status))
}

func (h *Handler) respondModeration(c *gin.Context, p *models.Project, err error, id string, status models.ProjectStatus) {
	if err != nil {
		h.respondError(c, "moderation_failed", err, "project_id", id, "status", status)
		return
	}
	if h.log != nil {
		h.log.Infow("project_moderated", "project_id", p.ID, "status", p.Status, "admin_id", requesterID(c))
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Moderation statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.ProjectStats
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/admin/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	st, err := h.services.GetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, "admin_stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
