package service

import (
	"fmt"
	"mime/multipart"

	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService backs the admin-only user CRUD surface. Route-level role
// gating has already happened by the time these run.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func validRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleEditor, models.RoleAdmin:
		return true
	}
	return false
}

// Get returns a single user.
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, apierr.FromStore(err, "User", id)
	}
	return &user, nil
}

// Create stores a new user with a hashed password.
func (s *UserService) Create(nickname, email, password, role string) (*models.User, error) {
	if !validRole(role) {
		return nil, apierr.New(apierr.Validation, "Role %q is not valid", role)
	}

	var existing models.User
	if err := s.db.Where("nickname = ? OR email = ?", nickname, email).First(&existing).Error; err == nil {
		return nil, apierr.New(apierr.Conflict, "Nickname or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Nickname:     nickname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apierr.FromStore(err, "User", nickname)
	}
	return &user, nil
}

// Update changes a user's profile fields and role.
func (s *UserService) Update(id uint, nickname, email, role string) (*models.User, error) {
	if !validRole(role) {
		return nil, apierr.New(apierr.Validation, "Role %q is not valid", role)
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, apierr.FromStore(err, "User", id)
	}

	user.Nickname = nickname
	user.Email = email
	user.Role = role

	if err := s.db.Save(&user).Error; err != nil {
		return nil, apierr.FromStore(err, "User", id)
	}
	return &user, nil
}

// Delete permanently removes a user so the nickname and email free up for
// reuse.
func (s *UserService) Delete(id uint) error {
	result := s.db.Unscoped().Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierr.New(apierr.NotFound, "User not found with id of %d", id)
	}
	return nil
}

// UploadPhoto validates and stores a user photo, then records the filename.
func (s *UserService) UploadPhoto(id uint, file *multipart.FileHeader, uploadPath string, maxSize int64) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, apierr.FromStore(err, "User", id)
	}

	filename, err := savePhoto(file, uploadPath, maxSize, fmt.Sprintf("user_photo_%d", user.ID))
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&user).Update("photo", filename).Error; err != nil {
		return nil, err
	}
	user.Photo = filename
	return &user, nil
}
