package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/bmxadventure/user_service/config"
	"github.com/bmxadventure/user_service/infra/queue"
	"github.com/bmxadventure/user_service/internal/mailer"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	sugar.Infow("mailer starting",
		"broker", cfg.KafkaBroker,
		"topic", cfg.KafkaTopic,
		"group_id", cfg.KafkaGroupID,
	)

	mailService := mailer.NewMailService(cfg, sugar)
	handler := mailer.NewMailHandler(mailService, sugar)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
		sugar,
	)

	sugar.Info("mailer listening for events")
	consumer.Listen()
}
