package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type userRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewUserRepository(db *mongo.Database, log *zap.Logger) repository.UserRepository {
	return &userRepository{
		coll: db.Collection(usersCollection),
		log:  log.With(zap.String("repository", "user"), zap.String("store", "mongo")),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) Find(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ApplyingFor != "" {
		query["applying_for"] = filter.ApplyingFor
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		r.log.Error("Failed to find users", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find users: %w", err)
	}

	users := make([]*entity.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateLoginTime(ctx context.Context, email string, at time.Time) error {
	return r.set(ctx, email, bson.M{"last_login_time": at})
}

func (r *userRepository) UpdateRoleStatus(ctx context.Context, email string, role entity.UserRole, status entity.ApplicationStatus) error {
	return r.set(ctx, email, bson.M{"role": role, "status": status})
}

func (r *userRepository) set(ctx context.Context, email string, fields bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
	if err != nil {
		r.log.Error("Failed to update user", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("update user %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
	}
	return nil
}
