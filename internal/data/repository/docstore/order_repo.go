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

type orderRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewOrderRepository(db *mongo.Database, log *zap.Logger) repository.OrderRepository {
	return &orderRepository{
		coll: db.Collection(ordersCollection),
		log:  log.With(zap.String("repository", "order"), zap.String("store", "mongo")),
	}
}

// pendingOrder matches id only while the order is still a cart line.
func pendingOrder(id string) bson.M {
	return bson.M{"_id": id, "payment_status": entity.PaymentStatusPending}
}

func (r *orderRepository) Create(ctx context.Context, o *entity.Order) error {
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		r.log.Error("Failed to create order", zap.Error(err), zap.String("customer_email", o.CustomerEmail))
		return fmt.Errorf("create order %s: %w", o.ID, err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.String("order_id", id))
		return nil, fmt.Errorf("find order by ID %s: %w", id, err)
	}
	return &o, nil
}

func (r *orderRepository) Find(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := bson.M{}
	if filter.CustomerEmail != "" {
		query["customer_email"] = filter.CustomerEmail
	}
	if filter.SellerEmail != "" {
		query["seller_email"] = filter.SellerEmail
	}
	if filter.OrderStatus != "" {
		query["order_status"] = filter.OrderStatus
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}

	sort := bson.D{{Key: "order_time", Value: -1}}
	if filter.NewestPaidFirst {
		sort = bson.D{{Key: "payment_time", Value: -1}, {Key: "order_time", Value: -1}}
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		r.log.Error("Failed to find orders", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find orders: %w", err)
	}

	orders := make([]*entity.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdatePendingQuantity(ctx context.Context, id string, quantity int) error {
	result, err := r.coll.UpdateOne(ctx, pendingOrder(id), bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		r.log.Error("Failed to update order quantity", zap.Error(err), zap.String("order_id", id))
		return fmt.Errorf("update order quantity %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", id, repository.ErrStateChanged)
	}
	return nil
}

func (r *orderRepository) DeletePending(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, pendingOrder(id))
	if err != nil {
		r.log.Error("Failed to delete order", zap.Error(err), zap.String("order_id", id))
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("order %s: %w", id, repository.ErrStateChanged)
	}
	return nil
}

func (r *orderRepository) DeleteCart(ctx context.Context, customerEmail string) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{
		"customer_email": customerEmail,
		"order_status":   entity.OrderStatusPending,
		"payment_status": entity.PaymentStatusPending,
	})
	if err != nil {
		r.log.Error("Failed to clear cart", zap.Error(err), zap.String("customer_email", customerEmail))
		return 0, fmt.Errorf("clear cart for %s: %w", customerEmail, err)
	}
	return result.DeletedCount, nil
}

func (r *orderRepository) ConfirmPayment(ctx context.Context, o *entity.Order) error {
	update := bson.M{"$set": bson.M{
		"order_status":   o.OrderStatus,
		"payment_status": o.PaymentStatus,
		"payment":        o.Payment,
		"transactionId":  o.TransactionID,
		"payment_time":   o.PaymentTime,
	}}

	result, err := r.coll.UpdateOne(ctx, pendingOrder(o.ID), update)
	if err != nil {
		r.log.Error("Failed to confirm payment", zap.Error(err), zap.String("order_id", o.ID))
		return fmt.Errorf("confirm payment %s: %w", o.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", o.ID, repository.ErrStateChanged)
	}
	return nil
}
