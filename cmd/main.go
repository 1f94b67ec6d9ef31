package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/goodakun/smartlearn-backend/internal/app"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Printf("failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		application.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
