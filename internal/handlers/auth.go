package handlers

import (
	"net/http"

	"innovation_showcase/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the sign-up payload. Name is accepted in place of Username.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Name     string `json:"name,omitempty" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
	// Optional. Allowed: user, admin
	Role string `json:"role,omitempty" example:"user"`
}

func (r RegisterRequest) username() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Name
}

// LoginRequest accepts either username or email.
type LoginRequest struct {
	Username string `json:"username,omitempty" example:"alice"`
	Email    string `json:"email,omitempty" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Credentials"
// @Success      201   {object}  service.AuthResult
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username: input.username(),
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		h.respondError(c, "auth_register_failed", err, "username", input.username())
		return
	}

	if h.log != nil {
		h.log.Infow("user_registered", "user_id", res.User.ID, "role", res.User.Role)
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  service.AuthResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.Login(c.Request.Context(), service.LoginInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, "auth_login_failed", err, "username", input.Username, "email", input.Email)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	u, err := h.services.Me(c.Request.Context(), requesterID(c))
	if err != nil {
		h.respondError(c, "auth_me_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
