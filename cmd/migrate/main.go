package main

import (
	"context"
	"os"
	"time"

	"codeforge/database"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logrus.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.RunMigrations(ctx, databaseURL); err != nil {
		logrus.Fatal("Migrations failed: ", err)
	}

	logrus.Info("All migrations completed")
}
