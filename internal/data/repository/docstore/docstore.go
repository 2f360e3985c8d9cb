// Package docstore persists users, medicines and orders as MongoDB documents.
package docstore

import (
	"context"
	"fmt"

	"healthhive/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	usersCollection     = "users"
	medicinesCollection = "medicines"
	ordersCollection    = "orders"
)

func NewRepository(db *mongo.Database, log *zap.Logger) *repository.Repository {
	return &repository.Repository{
		User:     NewUserRepository(db, log),
		Medicine: NewMedicineRepository(db, log),
		Order:    NewOrderRepository(db, log),
	}
}

// EnsureIndexes creates the unique email index and the lookup indexes the
// filters rely on. Safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}},
		},
		medicinesCollection: {
			{Keys: bson.D{{Key: "seller_email", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "customer_email", Value: 1}, {Key: "payment_status", Value: 1}}},
			{Keys: bson.D{{Key: "seller_email", Value: 1}, {Key: "payment_status", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}
