package handler

import (
	"net/http"

	"triviahub/backend/internal/auth"
	"triviahub/backend/internal/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the full route table around an App. Read endpoints are
// public; mutations require a token, with the per-resource ownership and
// role rules enforced by the policy behind the service layer. The /users
// surface is admin-only at the route level.
func NewRouter(app *App) *gin.Engine {
	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	requireAuth := auth.Middleware(app.DB, app.Config.JWTSecret)
	optionalAuth := auth.OptionalMiddleware(app.DB, app.Config.JWTSecret)

	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", app.Register)
			authRoutes.POST("/login", app.Login)
		}

		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", optionalAuth, app.GetGames)
			gameRoutes.GET("/:id", optionalAuth, app.GetGame)
			gameRoutes.POST("", requireAuth, app.CreateGame)
			gameRoutes.PUT("/:id", requireAuth, app.UpdateGame)
			gameRoutes.DELETE("/:id", requireAuth, app.DeleteGame)
			gameRoutes.PUT("/:id/photo", requireAuth, app.UploadGamePhoto)

			// Nested resource routes
			gameRoutes.GET("/:id/questions", optionalAuth, app.GetQuestions)
			gameRoutes.POST("/:id/questions", requireAuth, app.AddQuestion)
			gameRoutes.GET("/:id/reviews", optionalAuth, app.GetReviews)
			gameRoutes.POST("/:id/reviews", requireAuth, app.AddReview)
		}

		questionRoutes := apiV1.Group("/questions")
		{
			questionRoutes.GET("", optionalAuth, app.GetQuestions)
			questionRoutes.GET("/:id", optionalAuth, app.GetQuestion)
			questionRoutes.PUT("/:id", requireAuth, app.UpdateQuestion)
			questionRoutes.DELETE("/:id", requireAuth, app.DeleteQuestion)
		}

		reviewRoutes := apiV1.Group("/reviews")
		{
			reviewRoutes.GET("", optionalAuth, app.GetReviews)
			reviewRoutes.GET("/:id", optionalAuth, app.GetReview)
			reviewRoutes.PUT("/:id", requireAuth, app.UpdateReview)
			reviewRoutes.DELETE("/:id", requireAuth, app.DeleteReview)
		}

		userRoutes := apiV1.Group("/users")
		userRoutes.Use(requireAuth, auth.RequireRoles(models.RoleAdmin))
		{
			userRoutes.GET("", app.GetUsers)
			userRoutes.POST("", app.CreateUser)
			userRoutes.GET("/:id", app.GetUser)
			userRoutes.PUT("/:id", app.UpdateUser)
			userRoutes.DELETE("/:id", app.DeleteUser)
			userRoutes.PUT("/:id/photo", app.UploadUserPhoto)
		}
	}

	return router
}
