package handler

import (
	"net/http"
	"time"

	"triviahub/backend/internal/filter"
	"triviahub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type ReviewInput struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Game      uint      `json:"game"`
	User      uint      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

func newReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Title:     r.Title,
		Text:      r.Text,
		Rating:    r.Rating,
		Game:      r.GameID,
		User:      r.UserID,
		CreatedAt: r.CreatedAt,
	}
}

var reviewFields = map[string]string{
	"title":     "title",
	"rating":    "rating",
	"game":      "game_id",
	"user":      "user_id",
	"createdAt": "created_at",
}

// GetReviews godoc
// @Summary      List reviews
// @Description  Lists all reviews for a game, or all reviews with filter options when called without a game.
// @Tags         reviews
// @Produce      json
// @Param        id path int false "Game ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /games/{id}/reviews [get]
func (a *App) GetReviews(c *gin.Context) {
	if c.Param("id") != "" {
		gameID, err := parseID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		reviews, err := a.Reviews.ListByGame(gameID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := make([]ReviewResponse, 0, len(reviews))
		for _, r := range reviews {
			resp = append(resp, newReviewResponse(r))
		}
		respondList(c, resp, len(resp))
		return
	}

	result, err := filter.Run[models.Review](a.DB, c.Request.URL.Query(), reviewFields)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]ReviewResponse, 0, len(result.Data))
	for _, r := range result.Data {
		resp = append(resp, newReviewResponse(r))
	}
	respondPage(c, resp, result.Count, result.Total, result.Pagination)
}

// GetReview godoc
// @Summary      Get a single review
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Review ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id} [get]
func (a *App) GetReview(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	review, err := a.Reviews.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newReviewResponse(*review))
}

// AddReview godoc
// @Summary      Add a review to a game
// @Description  Users and admins only; one review per user per game.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int         true "Game ID"
// @Param        input  body ReviewInput true "Review Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /games/{id}/reviews [post]
func (a *App) AddReview(c *gin.Context) {
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

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	review := models.Review{Title: input.Title, Text: input.Text, Rating: input.Rating}
	if err := a.Reviews.Create(actor, gameID, &review); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, newReviewResponse(review))
}

// UpdateReview godoc
// @Summary      Update a review
// @Description  Review author or admin only.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int         true "Review ID"
// @Param        input body ReviewInput true "New Review Info"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id} [put]
func (a *App) UpdateReview(c *gin.Context) {
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

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	review, err := a.Reviews.Update(actor, id, input.Title, input.Text, input.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newReviewResponse(*review))
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Review author or admin only.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reviews/{id} [delete]
func (a *App) DeleteReview(c *gin.Context) {
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

	if err := a.Reviews.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}
