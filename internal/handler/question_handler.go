package handler

import (
	"net/http"
	"time"

	"triviahub/backend/internal/filter"
	"triviahub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type AnswerOptionInput struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
	D string `json:"d"`
}

type QuestionInput struct {
	Question string              `json:"question" binding:"required"`
	Answers  []AnswerOptionInput `json:"answers"`
}

type QuestionResponse struct {
	ID        uint                 `json:"id"`
	Question  string               `json:"question"`
	Answers   models.AnswerOptions `json:"answers"`
	Game      uint                 `json:"game"`
	User      uint                 `json:"user"`
	CreatedAt time.Time            `json:"createdAt"`
}

func newQuestionResponse(q models.Question) QuestionResponse {
	return QuestionResponse{
		ID:        q.ID,
		Question:  q.Question,
		Answers:   q.Answers,
		Game:      q.GameID,
		User:      q.UserID,
		CreatedAt: q.CreatedAt,
	}
}

func (in QuestionInput) answerOptions() models.AnswerOptions {
	answers := make(models.AnswerOptions, 0, len(in.Answers))
	for _, a := range in.Answers {
		answers = append(answers, models.AnswerOption{A: a.A, B: a.B, C: a.C, D: a.D})
	}
	return answers
}

var questionFields = map[string]string{
	"question":  "question",
	"game":      "game_id",
	"user":      "user_id",
	"createdAt": "created_at",
}

// GetQuestions godoc
// @Summary      List questions
// @Description  Lists all questions for a game, or all questions with filter options when called without a game.
// @Tags         questions
// @Produce      json
// @Param        id path int false "Game ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /games/{id}/questions [get]
func (a *App) GetQuestions(c *gin.Context) {
	if c.Param("id") != "" {
		gameID, err := parseID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		questions, err := a.Questions.ListByGame(gameID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := make([]QuestionResponse, 0, len(questions))
		for _, q := range questions {
			resp = append(resp, newQuestionResponse(q))
		}
		respondList(c, resp, len(resp))
		return
	}

	result, err := filter.Run[models.Question](a.DB, c.Request.URL.Query(), questionFields)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]QuestionResponse, 0, len(result.Data))
	for _, q := range result.Data {
		resp = append(resp, newQuestionResponse(q))
	}
	respondPage(c, resp, result.Count, result.Total, result.Pagination)
}

// GetQuestion godoc
// @Summary      Get a single question
// @Tags         questions
// @Produce      json
// @Param        id path int true "Question ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /questions/{id} [get]
func (a *App) GetQuestion(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	question, err := a.Questions.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newQuestionResponse(*question))
}

// AddQuestion godoc
// @Summary      Add a question to a game
// @Description  Editors and admins only; non-admin editors must own the game.
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int           true "Game ID"
// @Param        input  body QuestionInput true "Question Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id}/questions [post]
func (a *App) AddQuestion(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}
	gameID, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var input QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	question := models.Question{Question: input.Question, Answers: input.answerOptions()}
	if err := a.Questions.Create(actor, gameID, &question); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, newQuestionResponse(question))
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Description  Question author or admin only.
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int           true "Question ID"
// @Param        input body QuestionInput true "New Question Info"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /questions/{id} [put]
func (a *App) UpdateQuestion(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var input QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	question, err := a.Questions.Update(actor, id, input.Question, input.answerOptions())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newQuestionResponse(*question))
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Description  Question author or admin only.
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /questions/{id} [delete]
func (a *App) DeleteQuestion(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.Questions.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}
