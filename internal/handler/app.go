package handler

import (
	"triviahub/backend/internal/config"
	"triviahub/backend/internal/service"

	"gorm.io/gorm"
)

// App bundles the dependencies handlers need. It is built once at startup
// and injected into the router; there are no package globals.
type App struct {
	DB        *gorm.DB
	Config    *config.Config
	Games     *service.GameService
	Questions *service.QuestionService
	Reviews   *service.ReviewService
	Users     *service.UserService
}

// NewApp wires the service layer around one database handle.
func NewApp(db *gorm.DB, cfg *config.Config) *App {
	return &App{
		DB:        db,
		Config:    cfg,
		Games:     service.NewGameService(db),
		Questions: service.NewQuestionService(db),
		Reviews:   service.NewReviewService(db),
		Users:     service.NewUserService(db),
	}
}
