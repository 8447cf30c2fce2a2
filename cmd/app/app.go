package main

import (
	"os"

	"github.com/DRSN-tech/home-store/internal/app"
	config "github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.NewSlogLogger()

	// .env необязателен: в контейнере переменные задаются окружением
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
