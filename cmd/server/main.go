package main

import (
	"context"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"jira_notifier/internal/config"
	"jira_notifier/internal/handler"
	"jira_notifier/internal/logger"
	"jira_notifier/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	store := storage.NewS3MetadataStore(s3.NewFromConfig(awsCfg), cfg.MetadataBucketName)

	h := handler.NewSubscriptionHandler(cfg.SlackBotToken, store, cfg.SecurityLevelEmptyByDefault)
	router := handler.NewRouter(h)

	if err := router.Run(cfg.BindAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
