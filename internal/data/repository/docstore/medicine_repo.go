package docstore

import (
	"context"
	"errors"
	"fmt"

	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type medicineRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMedicineRepository(db *mongo.Database, log *zap.Logger) repository.MedicineRepository {
	return &medicineRepository{
		coll: db.Collection(medicinesCollection),
		log:  log.With(zap.String("repository", "medicine"), zap.String("store", "mongo")),
	}
}

func (r *medicineRepository) Create(ctx context.Context, m *entity.Medicine) error {
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		r.log.Error("Failed to create medicine", zap.Error(err), zap.String("seller_email", m.SellerEmail))
		return fmt.Errorf("create medicine %s: %w", m.ID, err)
	}
	return nil
}

func (r *medicineRepository) FindByID(ctx context.Context, id string) (*entity.Medicine, error) {
	var m entity.Medicine
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find medicine by ID", zap.Error(err), zap.String("medicine_id", id))
		return nil, fmt.Errorf("find medicine by ID %s: %w", id, err)
	}
	return &m, nil
}

func (r *medicineRepository) Find(ctx context.Context, filter repository.MedicineFilter) ([]*entity.Medicine, error) {
	query := bson.M{}
	if filter.SellerEmail != "" {
		query["seller_email"] = filter.SellerEmail
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.DiscountedOnly {
		query["discount"] = bson.M{"$gt": 0}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		r.log.Error("Failed to find medicines", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find medicines: %w", err)
	}

	medicines := make([]*entity.Medicine, 0)
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, fmt.Errorf("decode medicines: %w", err)
	}
	return medicines, nil
}

// Update sets the mutable fields only; the owner is never rewritten.
func (r *medicineRepository) Update(ctx context.Context, m *entity.Medicine) error {
	update := bson.M{"$set": bson.M{
		"seller_name":  m.SellerName,
		"name":         m.Name,
		"generic_name": m.GenericName,
		"description":  m.Description,
		"image":        m.Image,
		"category":     m.Category,
		"company":      m.Company,
		"mass_unit":    m.MassUnit,
		"price":        m.Price,
		"discount":     m.Discount,
		"updated_time": m.UpdatedTime,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": m.ID}, update)
	if err != nil {
		r.log.Error("Failed to update medicine", zap.Error(err), zap.String("medicine_id", m.ID))
		return fmt.Errorf("update medicine %s: %w", m.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("medicine %s: %w", m.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *medicineRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete medicine", zap.Error(err), zap.String("medicine_id", id))
		return fmt.Errorf("delete medicine %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("medicine %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
