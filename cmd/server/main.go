package main

import (
	"fmt"
	"log"

	"triviahub/backend/internal/config"
	"triviahub/backend/internal/database"
	"triviahub/backend/internal/handler"

	// Swagger imports
	_ "triviahub/backend/docs" // This is important for swag to find the generated docs
)

// @title           TriviaHub API
// @version         1.0
// @description     This is the API for the TriviaHub trivia and game-review service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := handler.NewApp(db, cfg)
	router := handler.NewRouter(app)

	fmt.Printf("Server is running on :%s\n", cfg.Port)
	fmt.Printf("Swagger UI is available at http://localhost:%s/swagger/index.html\n", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
