package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/config"
	"github.com/bmxadventure/user_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	api.StartServer(cfg, logger.Sugar())
}
