package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"partner-portal-api/res/auth"
	"partner-portal-api/res/commerce/shopify"
	"partner-portal-api/res/mail/postmark"
	"partner-portal-api/res/notification/slack"
	"partner-portal-api/res/storage"
	"partner-portal-api/res/store"
	"partner-portal-api/res/store/postgresql"
	"partner-portal-api/sys/export"
	apihttp "partner-portal-api/sys/http"
	"partner-portal-api/sys/registration"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var logger = log.New(os.Stdout, "(cmd/main.go)", log.LstdFlags|log.LUTC|log.Llongfile)

const externalServiceTimeout = 15 * time.Second

func main() {
	// Load .env file in development
	err := godotenv.Load()
	if err != nil {
		logger.Printf("Note: .env file not found, using system environment variables")
	}

	port := readRequiredEnvVar("PORT")
	environment := readRequiredEnvVar("ENVIRONMENT")

	// Persistence

	storeImpl, err := postgresql.Connect(readRequiredEnvVar("DATABASE_POSTGRES_URL"))
	if err != nil {
		logger.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgresql.Migrate(storeImpl); err != nil {
		logger.Fatalf("Error migrating database schema: %v", err)
	}

	// Bootstrap global admin if GLOBAL_ADMIN_EMAIL is set
	if globalAdminEmail := os.Getenv("GLOBAL_ADMIN_EMAIL"); globalAdminEmail != "" {
		if err := bootstrapGlobalAdmin(storeImpl, globalAdminEmail); err != nil {
			logger.Printf("Warning: Failed to bootstrap global admin: %v", err)
		}
	}

	// Document storage

	ctx := context.Background()
	documentStorage, err := storage.NewGCSService(
		ctx,
		readRequiredEnvVar("GCS_BUCKET_NAME"),
		readRequiredEnvVar("GCS_PROJECT_ID"),
		os.Getenv("GCS_CREDENTIALS_PATH"),
	)
	if err != nil {
		logger.Fatalf("Error initializing document storage: %v", err)
	}
	defer documentStorage.Close()

	// External services. Mail and Slack degrade gracefully when not
	// configured; Shopify is required for submissions to succeed.

	authImpl := auth.New(
		readRequiredEnvVar("JWT_SECRET"),
		readRequiredEnvVar("GOOGLE_OAUTH2_CLIENT_ID"),
		readRequiredEnvVar("GOOGLE_OAUTH2_CLIENT_SECRET"),
		readRequiredEnvVar("GOOGLE_OAUTH2_REDIRECT_URL"),
	)

	commerceService := shopify.New(
		os.Getenv("SHOPIFY_STORE_DOMAIN"),
		os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN"),
		externalServiceTimeout,
		log.New(os.Stdout, "(res/commerce/shopify/shopify.go)", log.LstdFlags|log.LUTC),
	)

	mailService := postmark.New(
		os.Getenv("POSTMARK_SERVER_TOKEN"),
		"", // default API URL
		externalServiceTimeout,
		log.New(os.Stdout, "(res/mail/postmark/postmark.go)", log.LstdFlags|log.LUTC),
	)

	notificationService := slack.New(
		os.Getenv("SLACK_WEBHOOK_URL"),
		externalServiceTimeout,
		log.New(os.Stdout, "(res/notification/slack/slack.go)", log.LstdFlags|log.LUTC),
	)

	registrationService := registration.New(&registration.Config{
		Logger:          log.New(os.Stdout, "(sys/registration/service.go)", log.LstdFlags|log.LUTC),
		Store:           storeImpl,
		Storage:         documentStorage,
		Commerce:        commerceService,
		Mail:            mailService,
		Notifications:   notificationService,
		EmailFrom:       readRequiredEnvVar("NOTIFICATION_EMAIL_FROM"),
		EmailRecipients: splitRecipients(readRequiredEnvVar("NOTIFICATION_EMAIL_RECIPIENTS")),
	})

	// HTTP surface

	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := &apihttp.Handler{
		Logger:       log.New(os.Stdout, "(sys/http/handler.go)", log.LstdFlags|log.LUTC),
		Store:        storeImpl,
		Auth:         authImpl,
		Storage:      documentStorage,
		Registration: registrationService,
		Exporter:     export.New(documentStorage),
	}

	router := apihttp.NewRouter(handler)

	logger.Printf("Starting server on :%s (environment: %s)\n", port, environment)
	if err := router.Run(fmt.Sprintf(":%s", port)); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}

func readRequiredEnvVar(name string) string {
	val, ok := os.LookupEnv(name)
	if !ok {
		logger.Fatalf("Env variable not set: %s", name)
	}
	return val
}

func splitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	recipients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

func bootstrapGlobalAdmin(storeImpl store.Store, email string) error {
	ctx := context.Background()

	user, err := storeImpl.Users().GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user with email %s: %w", email, err)
	}

	if user.Role == store.UserRoleGlobalAdmin {
		logger.Printf("User %s already has global admin role", email)
		return nil
	}

	globalAdminRole := store.UserRoleGlobalAdmin
	_, err = storeImpl.Users().Update(ctx, user.ID, nil, &globalAdminRole)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	logger.Printf("Successfully promoted user %s to global admin", email)
	return nil
}
