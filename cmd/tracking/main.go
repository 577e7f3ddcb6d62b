package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/kafka"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = cmd.MigrateTracking(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	publisher, err := kafka.NewSyncPublisher(
		[]string{configs.KafkaHost},
		configs.KafkaTopic,
		logger,
	)
	if err != nil {
		log.Fatalf("Error creating kafka publisher: %v", err)
	}
	defer publisher.Close()

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	server := httpin.NewTrackingServer(
		root.CreateDraftDeliveryCommandHandler(),
		root.CreateEditDeliveryDetailsCommandHandler(),
		root.CreatePlaceDeliveryCommandHandler(),
		root.CreatePickUpDeliveryCommandHandler(),
		root.CreateCompleteDeliveryCommandHandler(),
		root.CreateGetDeliveryQueryHandler(),
		root.CreateGetUncompletedDeliveriesQueryHandler(),
	)

	startWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:  goDotEnvVariable("KAFKA_HOST"),
		KafkaTopic: goDotEnvVariable("KAFKA_TOPIC"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(server *httpin.TrackingServer, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
