package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/technovate-fest/event-registration/api"
	"github.com/technovate-fest/event-registration/blob"
	"github.com/technovate-fest/event-registration/dynamo"
)

type serverConfig struct {
	Host        string `envconfig:"HOST" default:"0.0.0.0"`
	Port        string `envconfig:"PORT" default:"5001"`
	Environment string `envconfig:"ENVIRONMENT" default:"local"`

	DynamoTableName string `envconfig:"DYNAMO_TABLE_NAME" default:"EventRegistration"`
	// Endpoint override for dynamodb-local; empty means the real service.
	DynamoEndpoint string `envconfig:"DYNAMO_ENDPOINT"`

	UploadsDir        string `envconfig:"UPLOADS_DIR" default:"uploads"`
	UploadsPublicPath string `envconfig:"UPLOADS_PUBLIC_PATH" default:"/uploads"`

	AllowedOrigins    []string `envconfig:"ALLOWED_ORIGINS"`
	WhatsAppGroupLink string   `envconfig:"WHATSAPP_GROUP_LINK"`
	EmailFromAddress  string   `envconfig:"EMAIL_FROM_ADDRESS"`
}

const storeRetryDelay = 5 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// A missing .env is fine; env vars alone are enough.
	_ = godotenv.Load()

	var cfg serverConfig
	err := envconfig.Process("", &cfg)
	if err != nil {
		logger.Error("Failed to process config from env", "error", err)
		os.Exit(1)
	}

	env := api.PROD
	if cfg.Environment == "local" {
		env = api.LOCAL
	}

	ctx := context.Background()

	db, err := connectToStore(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to connect to store", "error", err)
		os.Exit(1)
	}

	artifacts, err := blob.NewFSStore(cfg.UploadsDir, cfg.UploadsPublicPath)
	if err != nil {
		logger.Error("Failed to set up artifact store", "error", err)
		os.Exit(1)
	}

	emailSender, err := createEmailSender(ctx, logger, env)
	if err != nil {
		logger.Error("Failed to set up email sender", "error", err)
		os.Exit(1)
	}

	a := api.NewAPI(db, artifacts, emailSender, logger, env, api.Config{
		UploadsDir:       cfg.UploadsDir,
		WhatsAppLink:     cfg.WhatsAppGroupLink,
		EmailFromAddress: cfg.EmailFromAddress,
		AllowedOrigins:   cfg.AllowedOrigins,
	})

	s := &http.Server{
		Handler: a.Handler(),
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
	}

	logger.Info("Server starting",
		slog.String("addr", s.Addr),
		slog.String("environment", cfg.Environment),
	)

	err = s.ListenAndServe()
	logger.Error("Server stopped", "error", err)
	os.Exit(1)
}

func connectToStore(ctx context.Context, logger *slog.Logger, cfg serverConfig) (*dynamo.DB, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = &cfg.DynamoEndpoint
		}
	})

	db := dynamo.NewDB(dynamoClient, cfg.DynamoTableName)

	err = db.WaitUntilAvailable(ctx, logger, storeRetryDelay)
	if err != nil {
		return nil, err
	}

	logger.Info("Store connected", slog.String("table", cfg.DynamoTableName))

	return db, nil
}
