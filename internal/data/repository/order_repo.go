package repository

import (
	"context"
	"errors"
	"fmt"

	"healthhive/internal/data/entity"
	"healthhive/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const orderColumns = `id, customer_email, customer_name, seller_email, seller_name, medicine_id,
	medicine_name, image, category, company, price, discount, quantity, order_status,
	payment_status, order_time, payment, transaction_id, payment_time`

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.Exec(ctx, query,
		o.ID,
		o.CustomerEmail,
		o.CustomerName,
		o.SellerEmail,
		o.SellerName,
		o.MedicineID,
		o.MedicineName,
		o.Image,
		o.Category,
		o.Company,
		o.Price,
		o.Discount,
		o.Quantity,
		o.OrderStatus,
		o.PaymentStatus,
		o.OrderTime,
		o.Payment,
		o.TransactionID,
		o.PaymentTime,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("customer_email", o.CustomerEmail),
			zap.String("medicine_id", o.MedicineID),
		)
		return fmt.Errorf("create order %s: %w", o.ID, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.String("order_id", id))
		return nil, fmt.Errorf("find order by ID %s: %w", id, err)
	}

	return o, nil
}

func (r *orderRepository) Find(ctx context.Context, filter OrderFilter) ([]*entity.Order, error) {
	var cond conditions
	if filter.CustomerEmail != "" {
		cond.add("customer_email = $%d", filter.CustomerEmail)
	}
	if filter.SellerEmail != "" {
		cond.add("seller_email = $%d", filter.SellerEmail)
	}
	if filter.OrderStatus != "" {
		cond.add("order_status = $%d", filter.OrderStatus)
	}
	if filter.PaymentStatus != "" {
		cond.add("payment_status = $%d", filter.PaymentStatus)
	}

	orderBy := ` ORDER BY order_time DESC`
	if filter.NewestPaidFirst {
		orderBy = ` ORDER BY payment_time DESC NULLS LAST, order_time DESC`
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + cond.where() + orderBy

	rows, err := r.db.Query(ctx, query, cond.args...)
	if err != nil {
		r.log.Error("Failed to find orders", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdatePendingQuantity(ctx context.Context, id string, quantity int) error {
	query := `
		UPDATE orders SET quantity = $2
		WHERE id = $1 AND payment_status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, quantity)
	if err != nil {
		r.log.Error("Failed to update order quantity", zap.Error(err), zap.String("order_id", id))
		return fmt.Errorf("update order quantity %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, ErrStateChanged)
	}

	return nil
}

func (r *orderRepository) DeletePending(ctx context.Context, id string) error {
	query := `DELETE FROM orders WHERE id = $1 AND payment_status = 'pending'`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete order", zap.Error(err), zap.String("order_id", id))
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, ErrStateChanged)
	}

	return nil
}

// DeleteCart removes every unpaid cart line of the customer. Receipts are kept.
func (r *orderRepository) DeleteCart(ctx context.Context, customerEmail string) (int64, error) {
	query := `
		DELETE FROM orders
		WHERE customer_email = $1 AND order_status = 'pending' AND payment_status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, customerEmail)
	if err != nil {
		r.log.Error("Failed to clear cart", zap.Error(err), zap.String("customer_email", customerEmail))
		return 0, fmt.Errorf("clear cart for %s: %w", customerEmail, err)
	}

	return result.RowsAffected(), nil
}

func (r *orderRepository) ConfirmPayment(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders
		SET order_status = $2, payment_status = $3, payment = $4, transaction_id = $5, payment_time = $6
		WHERE id = $1 AND payment_status = 'pending'
	`

	result, err := r.db.Exec(ctx, query,
		o.ID,
		o.OrderStatus,
		o.PaymentStatus,
		o.Payment,
		o.TransactionID,
		o.PaymentTime,
	)
	if err != nil {
		r.log.Error("Failed to confirm payment", zap.Error(err), zap.String("order_id", o.ID))
		return fmt.Errorf("confirm payment %s: %w", o.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", o.ID, ErrStateChanged)
	}

	r.log.Info("Payment confirmed",
		zap.String("order_id", o.ID),
		zap.String("transaction_id", o.TransactionID),
	)
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerEmail,
		&o.CustomerName,
		&o.SellerEmail,
		&o.SellerName,
		&o.MedicineID,
		&o.MedicineName,
		&o.Image,
		&o.Category,
		&o.Company,
		&o.Price,
		&o.Discount,
		&o.Quantity,
		&o.OrderStatus,
		&o.PaymentStatus,
		&o.OrderTime,
		&o.Payment,
		&o.TransactionID,
		&o.PaymentTime,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
