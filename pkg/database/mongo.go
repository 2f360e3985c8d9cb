package database

import (
	"context"
	"fmt"
	"time"

	"healthhive/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InitMongo connects to the document store and returns the configured database.
// The caller owns the client and must Disconnect it on shutdown.
func InitMongo(ctx context.Context, config utils.DatabaseConfig) (*mongo.Client, *mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(config.MongoURI).
		SetMaxPoolSize(uint64(config.MaxConns)).
		SetConnectTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return client, client.Database(config.MongoDB), nil
}
