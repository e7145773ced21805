package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"jira_notifier/internal/config"
	"jira_notifier/internal/handler"
	"jira_notifier/internal/logger"
	"jira_notifier/internal/storage"
)

var ginLambda *ginadapter.GinLambda

func initHandler() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return err
	}
	store := storage.NewS3MetadataStore(s3.NewFromConfig(awsCfg), cfg.MetadataBucketName)

	h := handler.NewSubscriptionHandler(cfg.SlackBotToken, store, cfg.SecurityLevelEmptyByDefault)
	ginLambda = ginadapter.New(handler.NewRouter(h))
	return nil
}

func handleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	err := logger.Init("info")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := initHandler(); err != nil {
		log.Fatalf("Failed to initialize handler: %v", err)
	}
	lambda.Start(handleRequest)
}
