package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthhive/internal/authz"
	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"
	"healthhive/internal/data/repository/memory"
	"healthhive/internal/dto/request"
	"healthhive/internal/gateway"
	"healthhive/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	amounts []int64
	err     error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountMinor int64, currency string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.amounts = append(g.amounts, amountMinor)
	return "pi_secret_" + currency, nil
}

type testEnv struct {
	svc      *Service
	repo     *repository.Repository
	events   *gateway.MemoryPublisher
	payments *fakeGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := memory.NewRepository()
	events := &gateway.MemoryPublisher{}
	payments := &fakeGateway{}
	log := zap.NewNop()

	svc := NewService(Dependencies{
		Repo:     repo,
		Policy:   authz.NewPolicy(authz.StaticVerifier{}, repo.User, log),
		Payments: payments,
		Events:   events,
		Config:   &utils.Config{Payment: utils.PaymentConfig{Currency: "usd"}},
		Log:      log,
	})
	return &testEnv{svc: svc, repo: repo, events: events, payments: payments}
}

// register goes through the service for accounts anyone may create and
// writes privileged accounts straight to the store.
func (e *testEnv) register(t *testing.T, email string, role entity.UserRole, status entity.ApplicationStatus, applyingFor string) {
	t.Helper()
	user := &entity.User{
		Email:       email,
		Name:        "Name of " + email,
		Role:        role,
		Status:      status,
		ApplyingFor: applyingFor,
		CreatedAt:   time.Now().UTC(),
	}
	if !user.SelfAssignable() {
		require.NoError(t, e.repo.User.Create(context.Background(), user))
		return
	}

	_, err := e.svc.Account.Register(context.Background(), "", &request.RegisterUserRequest{
		Email:       email,
		Name:        user.Name,
		Role:        string(role),
		Status:      string(status),
		ApplyingFor: applyingFor,
	})
	require.NoError(t, err)
}

func (e *testEnv) listing(t *testing.T, seller string, discount float64) string {
	t.Helper()
	m, err := e.svc.Listing.Create(context.Background(), seller, &request.CreateMedicineRequest{
		SellerEmail: seller,
		Name:        "Paracetamol",
		Category:    "tablet",
		Price:       12.5,
		Discount:    discount,
	})
	require.NoError(t, err)
	return m.ID
}

func (e *testEnv) order(t *testing.T, customer, medicineID string) string {
	t.Helper()
	o, err := e.svc.Order.PlaceOrder(context.Background(), &request.PlaceOrderRequest{
		CustomerEmail: customer,
		MedicineID:    medicineID,
		Quantity:      1,
	})
	require.NoError(t, err)
	return o.ID
}

func confirmRequest(tx string) *request.ConfirmPaymentRequest {
	return &request.ConfirmPaymentRequest{
		PaymentStatus: "confirmed",
		OrderStatus:   "confirmed",
		Payment:       map[string]any{"method": "card"},
		TransactionID: tx,
	}
}

var errBoom = errors.New("boom")
