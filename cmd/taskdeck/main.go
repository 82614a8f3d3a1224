package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/taskdeck-dev/taskdeck/db"
	"github.com/taskdeck-dev/taskdeck/internal/auth"
	"github.com/taskdeck-dev/taskdeck/internal/logging"
	"github.com/taskdeck-dev/taskdeck/internal/router"
)

func main() {
	logging.InitLogger()

	if err := godotenv.Load(); err != nil {
		logging.Logger.Warn("No .env file found, relying on process environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		logging.Logger.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		logging.Logger.Fatal("DATABASE_URL environment variable is not set")
	}

	conn, err := db.Connect(dsn)

	if err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		logging.Logger.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter(conn)

	port := os.Getenv("PORT")

	if port == "" {
		port = "4000"
		logging.Logger.Info("PORT not set, defaulting to 4000")
	}

	if err := r.Run(":" + port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}
