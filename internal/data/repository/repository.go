package repository

import (
	"context"
	"errors"
	"time"

	"healthhive/internal/data/entity"
	"healthhive/pkg/database"

	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrStateChanged = errors.New("record no longer in expected state")
)

type UserFilter struct {
	Role        entity.UserRole
	Status      entity.ApplicationStatus
	ApplyingFor string
}

type MedicineFilter struct {
	SellerEmail    string
	Category       string
	DiscountedOnly bool
}

type OrderFilter struct {
	CustomerEmail string
	SellerEmail   string
	OrderStatus   entity.OrderStatus
	PaymentStatus entity.PaymentStatus
	// NewestPaidFirst orders by payment_time descending instead of order_time.
	NewestPaidFirst bool
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Find(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	UpdateLoginTime(ctx context.Context, email string, at time.Time) error
	UpdateRoleStatus(ctx context.Context, email string, role entity.UserRole, status entity.ApplicationStatus) error
}

type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	FindByID(ctx context.Context, id string) (*entity.Medicine, error)
	Find(ctx context.Context, filter MedicineFilter) ([]*entity.Medicine, error)
	Update(ctx context.Context, medicine *entity.Medicine) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository writes cart mutations conditionally on the order still
// being unpaid, so a receipt is never modified by a racing cart request.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	Find(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	UpdatePendingQuantity(ctx context.Context, id string, quantity int) error
	DeletePending(ctx context.Context, id string) error
	DeleteCart(ctx context.Context, customerEmail string) (int64, error)
	ConfirmPayment(ctx context.Context, order *entity.Order) error
}

type Repository struct {
	User     UserRepository
	Medicine MedicineRepository
	Order    OrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Medicine: NewMedicineRepository(db, log),
		Order:    NewOrderRepository(db, log),
	}
}
