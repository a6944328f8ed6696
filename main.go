package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"codeforge/auth"
	"codeforge/config"
	"codeforge/database"
	"codeforge/deployer"
	"codeforge/genai"
	"codeforge/handlers"
	"codeforge/middleware"
	"codeforge/workspace"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		logrus.Fatal("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET not set")
	}

	// Context with timeout for initial connection and migrations
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	generator := genai.NewClient(cfg.GeneratorURL, cfg.GeneratorAPIKey)
	publisher := deployer.NewClient(cfg.DeployerURL)
	sessions := workspace.NewManager(db, db, generator)

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.GET("/ai/models", handlers.ListModels)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(jwtManager))
	{
		authed.GET("/projects", handlers.ListProjects(db))
		authed.POST("/projects", handlers.CreateProject(db))
		authed.GET("/projects/:id", handlers.GetProject(db))
		authed.DELETE("/projects/:id", handlers.DeleteProject(db, sessions))
		authed.PUT("/projects/:id/files", handlers.ReplaceFiles(db))
		authed.GET("/projects/:id/conversation", handlers.Conversation(db, sessions))
		authed.DELETE("/projects/:id/session", handlers.CloseSession(db, sessions))
		authed.POST("/ai/generate", handlers.Generate(db, sessions, cfg))
		authed.POST("/deploy/:id", handlers.Deploy(db, publisher))
		authed.GET("/credits", handlers.Credits(db, cfg))
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	logrus.Infof("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		logrus.Fatal("Server stopped: ", err)
	}
}
