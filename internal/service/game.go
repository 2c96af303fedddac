package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/models"
	"triviahub/backend/internal/policy"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GameService owns the game lifecycle: ownership policy, slug derivation and
// the question/review cascade on delete.
type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// Get returns a single game with its questions populated.
func (s *GameService) Get(id uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.Preload("Questions").First(&game, id).Error; err != nil {
		return nil, apierr.FromStore(err, "Game", id)
	}
	return &game, nil
}

// Create publishes a new game owned by the actor. Non-admins are limited to
// a single published game.
func (s *GameService) Create(actor policy.Actor, game *models.Game) error {
	var published int64
	if err := s.db.Model(&models.Game{}).Where("user_id = ?", actor.ID).Count(&published).Error; err != nil {
		return err
	}
	if err := policy.CanCreateGame(actor, published > 0); err != nil {
		return err
	}

	game.UserID = actor.ID
	game.Slug = slug.Make(game.Name)

	if err := s.db.Create(game).Error; err != nil {
		return apierr.FromStore(err, "Game", game.Name)
	}
	return nil
}

// Update changes a game's name and description. The slug is rederived from
// the name on every save; the owner reference never changes.
func (s *GameService) Update(actor policy.Actor, id uint, name, description string) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		return nil, apierr.FromStore(err, "Game", id)
	}
	if err := policy.CanModifyGame(actor, game.UserID); err != nil {
		return nil, err
	}

	game.Name = name
	game.Description = description
	game.Slug = slug.Make(game.Name)

	if err := s.db.Save(&game).Error; err != nil {
		return nil, apierr.FromStore(err, "Game", id)
	}
	return &game, nil
}

// Delete permanently removes a game. Its questions and reviews are removed
// in the same transaction, before the game row, so a failed cascade fails
// the delete. The rows must really go so the unique name frees up for reuse.
func (s *GameService) Delete(actor policy.Actor, id uint) error {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		return apierr.FromStore(err, "Game", id)
	}
	if err := policy.CanModifyGame(actor, game.UserID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("game_id = ?", game.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("game_id = ?", game.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&game).Error
	})
}

// UploadPhoto validates and stores a game photo, then records the filename.
// Only image mimetypes under the configured size limit are accepted.
func (s *GameService) UploadPhoto(actor policy.Actor, id uint, file *multipart.FileHeader, uploadPath string, maxSize int64) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		return nil, apierr.FromStore(err, "Game", id)
	}
	if err := policy.CanModifyGame(actor, game.UserID); err != nil {
		return nil, err
	}

	filename, err := savePhoto(file, uploadPath, maxSize, fmt.Sprintf("photo_%d", game.ID))
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&game).Update("photo", filename).Error; err != nil {
		return nil, err
	}
	game.Photo = filename
	return &game, nil
}

// savePhoto checks the upload against the image-only and size rules and
// writes it under dir as base plus the original extension. The write goes to
// a temp file first so a failure never leaves a half-written photo behind.
func savePhoto(file *multipart.FileHeader, dir string, maxSize int64, base string) (string, error) {
	if file == nil {
		return "", apierr.New(apierr.Upload, "Please upload a file")
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return "", apierr.New(apierr.Upload, "Please upload an image file")
	}
	if file.Size > maxSize {
		return "", apierr.New(apierr.Upload, "Please upload an image less than %d bytes", maxSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", apierr.Wrap(apierr.Upload, err, "Problem with file upload")
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apierr.Wrap(apierr.Upload, err, "Problem with file upload")
	}

	filename := base + filepath.Ext(file.Filename)
	tmp, err := os.CreateTemp(dir, base+"-*")
	if err != nil {
		return "", apierr.Wrap(apierr.Upload, err, "Problem with file upload")
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", apierr.Wrap(apierr.Upload, err, "Problem with file upload")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", apierr.Wrap(apierr.Upload, err, "Problem with file upload")
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, filename)); err != nil {
		os.Remove(tmp.Name())
		return "", apierr.Wrap(apierr.Upload, err, "Problem with file upload")
	}

	return filename, nil
}
