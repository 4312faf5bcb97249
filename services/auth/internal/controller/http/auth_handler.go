package http

import (
	"net/http"
	"strconv"

	"dalil/pkg/apperr"
	"dalil/pkg/media"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/auth/internal/entity"
	"dalil/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
}

func NewAuthHandler(authUseCase usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Locale   string `json:"locale"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
	Locale   *string `json:"locale"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type UserPage struct {
	Users []*entity.User `json:"users"`
	Total int64          `json:"total"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user account with the "user" role and returns a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = response.Localizer(c).Lang()
	}

	user, token, err := h.authUseCase.Register(req.Email, req.Password, req.FullName, locale)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticate user and return JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      401  {object}  response.Result
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	user, token, err := h.authUseCase.Login(req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me godoc
// @Summary      Get current user info
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result
// @Failure      401  {object}  response.Result
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUseCase.GetUser(c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Fields to change"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	user, err := h.authUseCase.UpdateProfile(c.GetString(middleware.UserIDKey), entity.ProfileUpdate{
		FullName: req.FullName,
		Bio:      req.Bio,
		Locale:   req.Locale,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary      Upload user avatar
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image file"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /avatar [post]
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, media.ErrNoFiles)
		return
	}

	candidate, err := media.FromFileHeader(file)
	if err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	user, err := h.authUseCase.UploadAvatar(c.GetString(middleware.UserIDKey), candidate)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, user)
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q      query string false "Search email or name"
// @Param        role   query string false "user or admin"
// @Param        limit  query int    false "Page size"
// @Param        offset query int    false "Offset"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	filter := entity.UserFilter{
		Search: c.Query("q"),
		Role:   entity.UserRole(c.Query("role")),
		Limit:  limit,
		Offset: offset,
	}
	users, total, err := h.authUseCase.ListUsers(c.GetString(middleware.UserIDKey), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, UserPage{Users: users, Total: total})
}

// ToggleRole godoc
// @Summary      Toggle admin role
// @Description  Promotes a user to admin or demotes an admin. Admins cannot demote themselves.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/users/{id}/role [post]
func (h *AuthHandler) ToggleRole(c *gin.Context) {
	user, err := h.authUseCase.ToggleRole(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.authUseCase.DeleteUser(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
