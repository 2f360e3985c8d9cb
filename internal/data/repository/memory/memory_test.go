package memory

import (
	"context"
	"testing"
	"time"

	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"

	"github.com/stretchr/testify/require"
)

func cartLine(id, customer string, at time.Time) *entity.Order {
	return &entity.Order{
		ID:            id,
		CustomerEmail: customer,
		SellerEmail:   "seller@x.com",
		MedicineID:    "med-1",
		Quantity:      1,
		OrderStatus:   entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		OrderTime:     at,
	}
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &entity.User{Email: "a@x.com", Name: "A", Role: entity.RoleUser, Status: entity.StatusPending}
	require.NoError(t, repo.Create(ctx, u))
	require.ErrorIs(t, repo.Create(ctx, u), repository.ErrDuplicate)

	missing, err := repo.FindByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{Email: "a@x.com", Role: entity.RoleUser}))

	u, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	u.Role = entity.RoleAdmin

	again, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, again.Role)
}

func TestOrderRepository_DeleteCartKeepsReceiptsAndOtherCustomers(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, cartLine("o1", "a@x.com", now)))
	require.NoError(t, repo.Create(ctx, cartLine("o2", "a@x.com", now)))
	require.NoError(t, repo.Create(ctx, cartLine("o3", "b@x.com", now)))

	paid := cartLine("o4", "a@x.com", now)
	require.NoError(t, paid.ConfirmPayment(entity.OrderStatusConfirmed, map[string]any{"method": "card"}, "tx", now))
	require.NoError(t, repo.Create(ctx, paid))

	n, err := repo.DeleteCart(ctx, "a@x.com")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	left, err := repo.Find(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, left, 2)
	ids := []string{left[0].ID, left[1].ID}
	require.ElementsMatch(t, []string{"o3", "o4"}, ids)
}

func TestOrderRepository_ConditionalWritesSkipReceipts(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	now := time.Now()

	o := cartLine("o1", "a@x.com", now)
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, o.ConfirmPayment(entity.OrderStatusConfirmed, nil, "tx-1", now))
	require.NoError(t, repo.ConfirmPayment(ctx, o))

	require.ErrorIs(t, repo.ConfirmPayment(ctx, o), repository.ErrStateChanged)
	require.ErrorIs(t, repo.UpdatePendingQuantity(ctx, "o1", 5), repository.ErrStateChanged)
	require.ErrorIs(t, repo.DeletePending(ctx, "o1"), repository.ErrStateChanged)

	stored, err := repo.FindByID(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, 1, stored.Quantity)
	require.Equal(t, "tx-1", stored.TransactionID)
}

func TestOrderRepository_NewestPaidFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"early", "late"} {
		o := cartLine(id, "a@x.com", base)
		require.NoError(t, o.ConfirmPayment(entity.OrderStatusConfirmed, nil, id, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, repo.Create(ctx, o))
	}

	orders, err := repo.Find(ctx, repository.OrderFilter{
		SellerEmail:     "seller@x.com",
		PaymentStatus:   entity.PaymentStatusConfirmed,
		NewestPaidFirst: true,
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "late", orders[0].ID)
}

func TestMedicineRepository_UpdateKeepsOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicineRepository()

	m := &entity.Medicine{ID: "m1", SellerEmail: "s@x.com", Name: "Aspirin", CreatedTime: time.Now()}
	require.NoError(t, repo.Create(ctx, m))

	changed := *m
	changed.SellerEmail = "thief@x.com"
	changed.Name = "Aspirin 500"
	require.NoError(t, repo.Update(ctx, &changed))

	stored, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "s@x.com", stored.SellerEmail)
	require.Equal(t, "Aspirin 500", stored.Name)

	require.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrNotFound)
}
