package main

import (
	"context"

	"parkd/internal/migrations/mongo"
	"parkd/internal/parking/broadcast"
	"parkd/internal/parking/events"
	"parkd/internal/parking/graph"
	"parkd/internal/parking/handler"
	"parkd/internal/parking/repository"
	"parkd/internal/parking/service"
	"parkd/internal/parking/validator"
	"parkd/pkg/app"
	"parkd/pkg/config"
	"parkd/pkg/kafka"
)

const ServiceName = "parkd"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting parking coordinator service")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	if err := mongo.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cancel()
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	if err := mongo.SeedLot(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.GridRows, cfg.GridCols); err != nil {
		cancel()
		cfg.Log.Fatal("Seeding failed", "error", err)
	}
	cancel()

	requestValidator := validator.NewRequestValidator(cfg.Log)
	parkingService, broadcaster := initServices(cfg, requestValidator)

	publisher := initKafkaPublisher(cfg)
	if publisher != nil {
		broadcaster.Subscribe(publisher)
		defer publisher.Close()
	}

	defaultGraph := graph.NewGrid(cfg.GridRows, cfg.GridCols)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewParkingHandler(parkingService, requestValidator, defaultGraph, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, requestValidator *validator.RequestValidator) (service.ParkingService, *broadcast.Broadcaster) {
	slotRepo := repository.NewMongoSlotRepository(cfg)
	occupancyRepo := repository.NewMongoOccupancyRepository(cfg)
	statsRepo := repository.NewMongoStatsRepository(cfg)
	broadcaster := broadcast.New(cfg.Log)

	parkingService := service.NewParkingService(
		slotRepo,
		occupancyRepo,
		statsRepo,
		requestValidator,
		broadcaster,
		cfg,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := parkingService.Load(ctx); err != nil {
		cfg.Log.Fatal("Failed to load parking state", "error", err)
	}

	cfg.Log.Info("Parking service initialized", "database", cfg.MongoDatabaseName)
	return parkingService, broadcaster
}

func initKafkaPublisher(cfg *config.Config) *events.KafkaPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka eventing disabled, no brokers configured")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka eventing enabled", "topic", cfg.KafkaTopic)
	return events.NewKafkaPublisher(producer, cfg.MongoDatabaseName, ServiceName, cfg.Log)
}
