package service

import (
	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/models"
	"triviahub/backend/internal/policy"

	"gorm.io/gorm"
)

// QuestionService owns the question lifecycle. Adding a question requires
// the editor or admin role and, for non-admins, ownership of the parent
// game; updates and deletes check the question's own recorded author.
type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

// Get returns a single question with its game populated.
func (s *QuestionService) Get(id uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.Preload("Game").First(&question, id).Error; err != nil {
		return nil, apierr.FromStore(err, "Question", id)
	}
	return &question, nil
}

// ListByGame returns all questions for one game.
func (s *QuestionService) ListByGame(gameID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Where("game_id = ?", gameID).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// Create adds a question to the given game, recording the actor as its
// author.
func (s *QuestionService) Create(actor policy.Actor, gameID uint, question *models.Question) error {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return apierr.FromStore(err, "Game", gameID)
	}
	if err := policy.CanAddQuestion(actor, game.UserID); err != nil {
		return err
	}

	question.GameID = gameID
	question.UserID = actor.ID

	if err := s.db.Create(question).Error; err != nil {
		return apierr.FromStore(err, "Question", gameID)
	}
	return nil
}

// Update changes a question's text and answer options.
func (s *QuestionService) Update(actor policy.Actor, id uint, text string, answers models.AnswerOptions) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, id).Error; err != nil {
		return nil, apierr.FromStore(err, "Question", id)
	}
	if err := policy.CanModifyQuestion(actor, question.UserID); err != nil {
		return nil, err
	}

	question.Question = text
	question.Answers = answers

	if err := s.db.Save(&question).Error; err != nil {
		return nil, apierr.FromStore(err, "Question", id)
	}
	return &question, nil
}

// Delete permanently removes a single question.
func (s *QuestionService) Delete(actor policy.Actor, id uint) error {
	var question models.Question
	if err := s.db.First(&question, id).Error; err != nil {
		return apierr.FromStore(err, "Question", id)
	}
	if err := policy.CanModifyQuestion(actor, question.UserID); err != nil {
		return err
	}
	return s.db.Unscoped().Delete(&question).Error
}
