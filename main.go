package main

import (
	"context"
	"log"
	"time"

	"healthhive/cmd"
	"healthhive/internal/authz"
	"healthhive/internal/data/repository"
	"healthhive/internal/data/repository/docstore"
	"healthhive/internal/data/repository/memory"
	"healthhive/internal/gateway"
	"healthhive/internal/wire"
	"healthhive/pkg/database"
	"healthhive/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	repos, closeStore, err := openStore(config, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	events, closeEvents := openEvents(config, logger)
	defer closeEvents()

	if config.Auth.Secret == "" {
		logger.Warn("AUTH_SECRET is empty; every authenticated route will reject requests")
	}
	if config.Payment.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is empty; payment intents will fail")
	}

	app := wire.Wiring(repos, wire.External{
		Verifier: authz.NewTokenVerifier(config.Auth.Secret, config.Auth.Issuer, config.Auth.Audience),
		Payments: gateway.NewStripeGateway(config.Payment.StripeSecretKey),
		Events:   events,
	}, config, logger)

	if err := ensureAdmins(app, config.Auth.AdminEmails, logger); err != nil {
		logger.Fatal("Failed to bootstrap admin accounts", zap.Error(err))
	}

	shutdownTimeout := time.Duration(config.App.ShutdownTimeout) * time.Second
	if err := cmd.APIServer(app.Router, config.App.Port, shutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}

func openStore(config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch config.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewRepository(), func() {}, nil

	case "mongo":
		client, db, err := database.InitMongo(ctx, config.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := docstore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		logger.Info("MongoDB connected successfully", zap.String("database", config.Database.MongoDB))
		return docstore.NewRepository(db, logger), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Mongo disconnect failed", zap.Error(err))
			}
		}, nil

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database connected successfully")
		return repository.NewRepository(db, logger), db.Close, nil
	}
}

func ensureAdmins(app *wire.App, emails []string, logger *zap.Logger) error {
	if len(emails) == 0 {
		logger.Warn("AUTH_ADMIN_EMAILS is empty; admin routes stay closed until an account is promoted in the store")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, email := range emails {
		if err := app.Service.Account.EnsureAdmin(ctx, email); err != nil {
			return err
		}
	}
	return nil
}

func openEvents(config *utils.Config, logger *zap.Logger) (gateway.EventPublisher, func()) {
	if len(config.Kafka.Brokers) == 0 {
		logger.Info("Kafka brokers not configured; domain events are disabled")
		return gateway.NopPublisher{}, func() {}
	}

	publisher := gateway.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.Topic)
	logger.Info("Publishing domain events",
		zap.Strings("brokers", config.Kafka.Brokers),
		zap.String("topic", config.Kafka.Topic),
	)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Kafka close failed", zap.Error(err))
		}
	}
}
