package handlers

import (
	"errors"
	"net/http"
	"strings"

	"innovation_showcase/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

var errTagsFormat = errors.New("tags must be an array of strings or a comma-separated string")

// tagList accepts ["a","b"] as well as "a, b".
type tagList []string

func (t *tagList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return errTagsFormat
	}
	*t = strings.Split(joined, ",")
	return nil
}

// CreateProjectRequest is the submission payload.
type CreateProjectRequest struct {
	Title       string  `json:"title" example:"Solar Tracker"`
	Description string  `json:"description" example:"Panel that follows the sun"`
	Category    string  `json:"category" example:"Energy"`
	Tags        tagList `json:"tags" swaggertype:"array,string" example:"solar,iot"`
	VideoLink   string  `json:"video_link,omitempty" example:"https://youtu.be/xyz"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// AddCommentRequest accepts projectId or project_id.
type AddCommentRequest struct {
	ProjectID      string `json:"projectId" example:"b3f0..."`
	ProjectIDSnake string `json:"project_id,omitempty" swaggerignore:"true"`
	Content        string `json:"content" example:"Nice work"`
}

func (r AddCommentRequest) projectID() string {
	if r.ProjectID != "" {
		return r.ProjectID
	}
	return r.ProjectIDSnake
}

// @Summary      List approved projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}   models.Project
// @Failure      500  {object}  map[string]string
// @Router       /api/projects [get]
func (h *Handler) listApproved(c *gin.Context) {
	projects, err := h.services.ListApproved(c.Request.Context())
	if err != nil {
		h.respondError(c, "projects_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/projects/{id} [get]
func (h *Handler) getProject(c *gin.Context) {
	id := c.Param("id")
	p, err := h.services.Projects.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "project_get_failed", err, "project_id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Submit project
// @Description  New projects start as pending and are hidden until approved.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      CreateProjectRequest  true  "Project"
// @Success      201   {object}  models.Project
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/projects [post]
// @Security     BearerAuth
func (h *Handler) createProject(c *gin.Context) {
	var req CreateProjectRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	p, err := h.services.Projects.Create(c.Request.Context(), service.CreateProjectInput{
		OwnerID:     requesterID(c),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		VideoLink:   req.VideoLink,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.respondError(c, "project_create_failed", err, "user_id", requesterID(c))
		return
	}

	if h.log != nil {
		h.log.Infow("project_submitted", "project_id", p.ID, "user_id", p.UserID)
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {array}   models.Comment
// @Failure      500  {object}  map[string]string
// @Router       /api/projects/{id}/comments [get]
func (h *Handler) listComments(c *gin.Context) {
	id := c.Param("id")
	comments, err := h.services.ListForProject(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "comments_list_failed", err, "project_id", id)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// @Summary      Add comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      AddCommentRequest  true  "Comment"
// @Success      201   {object}  models.Comment
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/comments [post]
// @Security     BearerAuth
func (h *Handler) addComment(c *gin.Context) {
	var req AddCommentRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	cm, err := h.services.Comments.Add(c.Request.Context(), service.AddCommentInput{
		ProjectID: req.projectID(),
		AuthorID:  requesterID(c),
		Content:   req.Content,
	})
	if err != nil {
		h.respondError(c, "comment_add_failed", err, "project_id", req.projectID())
		return
	}
	c.JSON(http.StatusCreated, cm)
}
