package handler

import (
	"net/http"
	"time"

	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/filter"
	"triviahub/backend/internal/models"
	"triviahub/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Nickname string `json:"nickname" binding:"required" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
	Role     string `json:"role" binding:"omitempty,oneof=user editor" example:"user"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UserInput defines the structure for admin user management.
type UserInput struct {
	Nickname string `json:"nickname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	Role     string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		Role:      user.Role,
		Photo:     user.Photo,
		CreatedAt: user.CreatedAt,
	}
}

var userFields = map[string]string{
	"nickname":  "nickname",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

// endregion

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token. Role may be user or editor; admins are created by admins.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /auth/register [post]
func (a *App) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}

	user, err := a.Users.Create(input.Nickname, input.Email, input.Password, input.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.ID, a.Config.JWTSecret)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"token": token})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates with nickname/email and password, returns a token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func (a *App) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	var user models.User
	if err := a.DB.Where("nickname = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		respondError(c, apierr.New(apierr.Unauthorized, "Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		respondError(c, apierr.New(apierr.Unauthorized, "Invalid credentials"))
		return
	}

	token, err := jwt.GenerateToken(user.ID, a.Config.JWTSecret)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"token": token})
}

// endregion

// region --- Admin User Handlers ---

// GetUsers godoc
// @Summary      List users
// @Description  Admin only. Supports filter, sort, select and pagination options.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /users [get]
func (a *App) GetUsers(c *gin.Context) {
	result, err := filter.Run[models.User](a.DB, c.Request.URL.Query(), userFields)
	if err != nil {
		respondError(c, err)
		return
	}
	users := make([]UserResponse, 0, len(result.Data))
	for _, user := range result.Data {
		users = append(users, newUserResponse(user))
	}
	respondPage(c, users, result.Count, result.Total, result.Pagination)
}

// GetUser godoc
// @Summary      Get a single user
// @Description  Admin only.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (a *App) GetUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := a.Users.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newUserResponse(*user))
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Admin only. May create any role, including admin.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UserInput true "User Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users [post]
func (a *App) CreateUser(c *gin.Context) {
	var input UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	if input.Password == "" {
		respondError(c, apierr.New(apierr.Validation, "Please add a password"))
		return
	}

	user, err := a.Users.Create(input.Nickname, input.Email, input.Password, input.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, newUserResponse(*user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Admin only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int       true "User ID"
// @Param        input body UserInput true "New User Info"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [put]
func (a *App) UpdateUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var input UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := a.Users.Update(id, input.Nickname, input.Email, input.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newUserResponse(*user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Admin only.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
func (a *App) DeleteUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.Users.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// UploadUserPhoto godoc
// @Summary      Upload a user photo
// @Description  Admin only. Image mimetypes under the configured size limit.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     int  true "User ID"
// @Param        file formData file true "Image file"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/photo [put]
func (a *App) UploadUserPhoto(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apierr.New(apierr.Upload, "Please upload a file"))
		return
	}

	user, err := a.Users.UploadPhoto(id, file, a.Config.FileUploadPath, a.Config.MaxFileUpload)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user.Photo)
}

// endregion
