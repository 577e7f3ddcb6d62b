package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/kafka"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = cmd.MigrateCourier(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// The courier side consumes delivery events; it never publishes any.
	root := cmd.NewCompositionRoot(configs, gormDB, nil, logger)

	assignHandler := root.CreateAssignDeliveryCommandHandler()
	fulfillHandler := root.CreateFulfillDeliveryCommandHandler()

	retryQueue := jobs.NewAssignmentRetryQueue()
	retryJob := jobs.NewAssignmentRetryJob(assignHandler, retryQueue, logger)

	registry := kafka.NewRegistry()
	eventsHandler := kafka.NewDeliveryEventsHandler(assignHandler, fulfillHandler, retryQueue, logger)
	eventsHandler.RegisterOn(registry)

	consumer, err := kafka.NewConsumer(
		[]string{configs.KafkaHost},
		configs.KafkaConsumerGroup,
		configs.KafkaTopic,
		registry,
		logger,
	)
	if err != nil {
		log.Fatalf("Error creating kafka consumer: %v", err)
	}
	defer consumer.Close()

	payoutHandler, err := root.CreateCalculatePayoutQueryHandler()
	if err != nil {
		log.Fatalf("Error creating payout handler: %v", err)
	}

	server := httpin.NewCourierServer(
		root.CreateRegisterCourierCommandHandler(),
		root.CreateUpdateCourierCommandHandler(),
		root.CreateGetAllCouriersQueryHandler(),
		root.CreateGetCourierQueryHandler(),
		payoutHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = retryJob.Start(); err != nil {
		log.Fatalf("Error starting assignment retry job: %v", err)
	}
	defer retryJob.Stop()

	go func() {
		if runErr := consumer.Run(ctx); runErr != nil {
			logger.Error("kafka consumer stopped", "error", runErr)
			stop()
		}
	}()

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	go func() {
		startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			logger.Error("web server stopped", "error", startErr)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:          goDotEnvVariable("KAFKA_HOST"),
		KafkaConsumerGroup: goDotEnvVariable("KAFKA_CONSUMER_GROUP"),
		KafkaTopic:         goDotEnvVariable("KAFKA_TOPIC"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}
