package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/jmdelacruz/sis-backend/internal/pkg/logger"
	"github.com/jmdelacruz/sis-backend/internal/server"
)

func main() {
	// .env is optional; real deployments inject environment directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using environment variables")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
