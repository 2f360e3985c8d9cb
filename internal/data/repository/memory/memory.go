// Package memory keeps every collection in process memory. It backs tests and
// DB_DRIVER=memory; each method holds the store lock for one record write,
// the same single-record atomicity the database drivers give.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"
)

func NewRepository() *repository.Repository {
	return &repository.Repository{
		User:     NewUserRepository(),
		Medicine: NewMedicineRepository(),
		Order:    NewOrderRepository(),
	}
}

type userRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepository() repository.UserRepository {
	return &userRepository{users: make(map[string]entity.User)}
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicate)
	}
	r.users[user.Email] = copyUser(*user)
	return nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	u = copyUser(u)
	return &u, nil
}

func (r *userRepository) Find(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0)
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if filter.ApplyingFor != "" && u.ApplyingFor != filter.ApplyingFor {
			continue
		}
		u = copyUser(u)
		users = append(users, &u)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].Email < users[j].Email
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) UpdateLoginTime(_ context.Context, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
	}
	u.LastLoginTime = &at
	r.users[email] = u
	return nil
}

func (r *userRepository) UpdateRoleStatus(_ context.Context, email string, role entity.UserRole, status entity.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
	}
	u.Role = role
	u.Status = status
	r.users[email] = u
	return nil
}

func copyUser(u entity.User) entity.User {
	if u.LastLoginTime != nil {
		t := *u.LastLoginTime
		u.LastLoginTime = &t
	}
	return u
}

type medicineRepository struct {
	mu        sync.RWMutex
	medicines map[string]entity.Medicine
}

func NewMedicineRepository() repository.MedicineRepository {
	return &medicineRepository{medicines: make(map[string]entity.Medicine)}
}

func (r *medicineRepository) Create(_ context.Context, m *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.medicines[m.ID]; ok {
		return fmt.Errorf("create medicine %s: %w", m.ID, repository.ErrDuplicate)
	}
	r.medicines[m.ID] = *m
	return nil
}

func (r *medicineRepository) FindByID(_ context.Context, id string) (*entity.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.medicines[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *medicineRepository) Find(_ context.Context, filter repository.MedicineFilter) ([]*entity.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	medicines := make([]*entity.Medicine, 0)
	for _, m := range r.medicines {
		if filter.SellerEmail != "" && m.SellerEmail != filter.SellerEmail {
			continue
		}
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.DiscountedOnly && m.Discount <= 0 {
			continue
		}
		medicines = append(medicines, &m)
	}

	sort.Slice(medicines, func(i, j int) bool {
		if medicines[i].CreatedTime.Equal(medicines[j].CreatedTime) {
			return medicines[i].ID < medicines[j].ID
		}
		return medicines[i].CreatedTime.After(medicines[j].CreatedTime)
	})
	return medicines, nil
}

func (r *medicineRepository) Update(_ context.Context, m *entity.Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.medicines[m.ID]
	if !ok {
		return fmt.Errorf("medicine %s: %w", m.ID, repository.ErrNotFound)
	}
	updated := *m
	updated.SellerEmail = current.SellerEmail
	updated.SellerID = current.SellerID
	updated.CreatedTime = current.CreatedTime
	r.medicines[m.ID] = updated
	return nil
}

func (r *medicineRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.medicines[id]; !ok {
		return fmt.Errorf("medicine %s: %w", id, repository.ErrNotFound)
	}
	delete(r.medicines, id)
	return nil
}

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]entity.Order
}

func NewOrderRepository() repository.OrderRepository {
	return &orderRepository{orders: make(map[string]entity.Order)}
}

func (r *orderRepository) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return fmt.Errorf("create order %s: %w", o.ID, repository.ErrDuplicate)
	}
	r.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r *orderRepository) FindByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *orderRepository) Find(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*entity.Order, 0)
	for _, o := range r.orders {
		if filter.CustomerEmail != "" && o.CustomerEmail != filter.CustomerEmail {
			continue
		}
		if filter.SellerEmail != "" && o.SellerEmail != filter.SellerEmail {
			continue
		}
		if filter.OrderStatus != "" && o.OrderStatus != filter.OrderStatus {
			continue
		}
		if filter.PaymentStatus != "" && o.PaymentStatus != filter.PaymentStatus {
			continue
		}
		o = copyOrder(o)
		orders = append(orders, &o)
	}

	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if filter.NewestPaidFirst {
			ta, tb := paidAt(a), paidAt(b)
			if !ta.Equal(tb) {
				return ta.After(tb)
			}
		}
		if a.OrderTime.Equal(b.OrderTime) {
			return a.ID < b.ID
		}
		return a.OrderTime.After(b.OrderTime)
	})
	return orders, nil
}

func (r *orderRepository) UpdatePendingQuantity(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok || o.IsPaid() {
		return fmt.Errorf("order %s: %w", id, repository.ErrStateChanged)
	}
	o.Quantity = quantity
	r.orders[id] = o
	return nil
}

func (r *orderRepository) DeletePending(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok || o.IsPaid() {
		return fmt.Errorf("order %s: %w", id, repository.ErrStateChanged)
	}
	delete(r.orders, id)
	return nil
}

func (r *orderRepository) DeleteCart(_ context.Context, customerEmail string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, o := range r.orders {
		if o.CustomerEmail == customerEmail && o.IsCartItem() {
			delete(r.orders, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *orderRepository) ConfirmPayment(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[o.ID]
	if !ok || current.IsPaid() {
		return fmt.Errorf("order %s: %w", o.ID, repository.ErrStateChanged)
	}
	current.OrderStatus = o.OrderStatus
	current.PaymentStatus = o.PaymentStatus
	current.Payment = o.Payment
	current.TransactionID = o.TransactionID
	current.PaymentTime = o.PaymentTime
	r.orders[o.ID] = copyOrder(current)
	return nil
}

func copyOrder(o entity.Order) entity.Order {
	if o.Payment != nil {
		o.Payment = maps.Clone(o.Payment)
	}
	if o.PaymentTime != nil {
		t := *o.PaymentTime
		o.PaymentTime = &t
	}
	return o
}

func paidAt(o *entity.Order) time.Time {
	if o.PaymentTime == nil {
		return time.Time{}
	}
	return *o.PaymentTime
}
