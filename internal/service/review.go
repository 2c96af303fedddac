package service

import (
	"database/sql"
	"errors"

	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/models"
	"triviahub/backend/internal/policy"

	"gorm.io/gorm"
)

// ReviewService owns the review lifecycle. Every mutation recomputes the
// parent game's average rating from the full current review set inside the
// same transaction, so repeated triggers are idempotent and concurrent
// reviewers serialize on the store.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Get returns a single review with its game populated.
func (s *ReviewService) Get(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("Game").First(&review, id).Error; err != nil {
		return nil, apierr.FromStore(err, "Review", id)
	}
	return &review, nil
}

// ListByGame returns all reviews for one game.
func (s *ReviewService) ListByGame(gameID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("game_id = ?", gameID).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create stores a new review by the actor for the given game. A user gets
// one review per game; a second attempt is a conflict.
func (s *ReviewService) Create(actor policy.Actor, gameID uint, review *models.Review) error {
	if err := policy.CanCreateReview(actor); err != nil {
		return err
	}

	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return apierr.FromStore(err, "Game", gameID)
	}

	var existing models.Review
	err := s.db.Where("game_id = ? AND user_id = ?", gameID, actor.ID).First(&existing).Error
	if err == nil {
		return apierr.New(apierr.Conflict, "User %d has already reviewed game %d", actor.ID, gameID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	review.GameID = gameID
	review.UserID = actor.ID

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return apierr.FromStore(err, "Review", gameID)
		}
		return recomputeAverageRating(tx, gameID)
	})
}

// Update changes a review's content and refreshes the game's average.
func (s *ReviewService) Update(actor policy.Actor, id uint, title, text string, rating int) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		return nil, apierr.FromStore(err, "Review", id)
	}
	if err := policy.CanModifyReview(actor, review.UserID); err != nil {
		return nil, err
	}

	review.Title = title
	review.Text = text
	review.Rating = rating

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return apierr.FromStore(err, "Review", id)
		}
		return recomputeAverageRating(tx, review.GameID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete permanently removes a review and refreshes the game's average. The
// row must really go so the one-review-per-user constraint frees up and the
// user can review the game again.
func (s *ReviewService) Delete(actor policy.Actor, id uint) error {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		return apierr.FromStore(err, "Review", id)
	}
	if err := policy.CanModifyReview(actor, review.UserID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return err
		}
		return recomputeAverageRating(tx, review.GameID)
	})
}

// recomputeAverageRating derives the game's average from the full current
// set of its reviews. When none remain the stored value is cleared rather
// than left stale.
func recomputeAverageRating(tx *gorm.DB, gameID uint) error {
	var avg sql.NullFloat64
	err := tx.Model(&models.Review{}).
		Where("game_id = ?", gameID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return err
	}

	var value *float64
	if avg.Valid {
		value = &avg.Float64
	}
	return tx.Model(&models.Game{}).Where("id = ?", gameID).Update("average_rating", value).Error
}
