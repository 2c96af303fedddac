package handler

import (
	"net/http"
	"strconv"
	"time"

	"triviahub/backend/internal/apierr"
	"triviahub/backend/internal/auth"
	"triviahub/backend/internal/filter"
	"triviahub/backend/internal/models"
	"triviahub/backend/internal/policy"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameInput struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"required,max=1000"`
}

type GameResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	AverageRating *float64           `json:"averageRating,omitempty"`
	Photo         string             `json:"photo"`
	User          uint               `json:"user"`
	CreatedAt     time.Time          `json:"createdAt"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
}

func newGameResponse(game models.Game) GameResponse {
	resp := GameResponse{
		ID:            game.ID,
		Name:          game.Name,
		Slug:          game.Slug,
		Description:   game.Description,
		AverageRating: game.AverageRating,
		Photo:         game.Photo,
		User:          game.UserID,
		CreatedAt:     game.CreatedAt,
	}
	for _, q := range game.Questions {
		resp.Questions = append(resp.Questions, newQuestionResponse(q))
	}
	return resp
}

// Filterable/sortable game fields, keyed by their exposed names.
var gameFields = map[string]string{
	"name":          "name",
	"slug":          "slug",
	"description":   "description",
	"averageRating": "average_rating",
	"photo":         "photo",
	"user":          "user_id",
	"createdAt":     "created_at",
}

// endregion

// parseID reads a numeric path parameter. A malformed id behaves like a
// missing resource, the same as a lookup that finds nothing.
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apierr.New(apierr.NotFound, "Resource not found")
	}
	return uint(id), nil
}

// actorFrom returns the resolved actor or an Unauthorized error.
func actorFrom(c *gin.Context) (policy.Actor, error) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		return policy.Actor{}, apierr.New(apierr.Unauthorized, "Not authorized to access this route")
	}
	return actor, nil
}

// GetGames godoc
// @Summary      List games
// @Description  Retrieves a filtered, sorted, paginated list of games.
// @Tags         games
// @Produce      json
// @Param        sort   query  string  false  "Comma-separated sort fields, '-' prefix for descending"
// @Param        select query  string  false  "Comma-separated fields to return"
// @Param        page   query  int     false  "Page number"  default(1)
// @Param        limit  query  int     false  "Items per page"  default(25)
// @Success      200  {object}  map[string]interface{}
// @Router       /games [get]
func (a *App) GetGames(c *gin.Context) {
	result, err := filter.Run[models.Game](a.DB, c.Request.URL.Query(), gameFields)
	if err != nil {
		respondError(c, err)
		return
	}

	games := make([]GameResponse, 0, len(result.Data))
	for _, game := range result.Data {
		games = append(games, newGameResponse(game))
	}
	respondPage(c, games, result.Count, result.Total, result.Pagination)
}

// GetGame godoc
// @Summary      Get a single game
// @Description  Retrieves one game with its questions.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id} [get]
func (a *App) GetGame(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	game, err := a.Games.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newGameResponse(*game))
}

// CreateGame godoc
// @Summary      Create a game
// @Description  Publishes a new game owned by the caller. Editors and admins only; non-admins may publish one game.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /games [post]
func (a *App) CreateGame(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	game := models.Game{Name: input.Name, Description: input.Description}
	if err := a.Games.Create(actor, &game); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, newGameResponse(game))
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Updates a game's name and description. Owner or admin only.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int       true  "Game ID"
// @Param        input body  GameInput true  "New Game Info"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id} [put]
func (a *App) UpdateGame(c *gin.Context) {
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

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	game, err := a.Games.Update(actor, id, input.Name, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, newGameResponse(*game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game together with its questions and reviews. Owner or admin only.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id} [delete]
func (a *App) DeleteGame(c *gin.Context) {
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

	if err := a.Games.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// UploadGamePhoto godoc
// @Summary      Upload a game photo
// @Description  Stores an image for the game. Owner or admin only; image mimetypes under the configured size limit.
// @Tags         games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int   true  "Game ID"
// @Param        file formData  file  true  "Image file"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /games/{id}/photo [put]
func (a *App) UploadGamePhoto(c *gin.Context) {
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

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apierr.New(apierr.Upload, "Please upload a file"))
		return
	}

	game, err := a.Games.UploadPhoto(actor, id, file, a.Config.FileUploadPath, a.Config.MaxFileUpload)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, game.Photo)
}
