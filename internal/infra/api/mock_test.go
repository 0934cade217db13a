//go:build !integration

package api

import (
	"context"

	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/adapter"
	"engagesphere/internal/usecase"
)

// --- Mock use cases ---
// Each mock embeds its interface and overrides only what a test exercises.

type mockUserUC struct {
	usecase.UserUseCase
	LoginFunc      func(ctx context.Context, email, password string) (*model.User, error)
	RequestOTPFunc func(ctx context.Context, email string) error
	GetByIDFunc    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserUC) Login(ctx context.Context, email, password string) (*model.User, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *mockUserUC) RequestOTP(ctx context.Context, email string) error {
	return m.RequestOTPFunc(ctx, email)
}

func (m *mockUserUC) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockAdminUC struct {
	usecase.AdminUseCase
	LoginFunc func(ctx context.Context, email, password string) (*model.Admin, error)
}

func (m *mockAdminUC) Login(ctx context.Context, email, password string) (*model.Admin, error) {
	return m.LoginFunc(ctx, email, password)
}

type mockPlanUC struct {
	usecase.PlanUseCase
	ListFunc    func(ctx context.Context, search string, offset, limit int) ([]*model.Plan, int, error)
	GetByIDFunc func(ctx context.Context, planID string) (*model.Plan, error)
}

func (m *mockPlanUC) List(ctx context.Context, search string, offset, limit int) ([]*model.Plan, int, error) {
	return m.ListFunc(ctx, search, offset, limit)
}

func (m *mockPlanUC) GetByID(ctx context.Context, planID string) (*model.Plan, error) {
	return m.GetByIDFunc(ctx, planID)
}

type mockOrderUC struct {
	usecase.OrderUseCase
	CreateOrderFunc   func(ctx context.Context, in usecase.CreateOrderInput) (*adapter.GatewayOrder, *model.Payment, *model.Subscription, error)
	VerifyPaymentFunc func(ctx context.Context, in usecase.VerifyPaymentInput) (*model.Payment, *model.Subscription, bool, error)
}

func (m *mockOrderUC) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*adapter.GatewayOrder, *model.Payment, *model.Subscription, error) {
	return m.CreateOrderFunc(ctx, in)
}

func (m *mockOrderUC) VerifyPayment(ctx context.Context, in usecase.VerifyPaymentInput) (*model.Payment, *model.Subscription, bool, error) {
	return m.VerifyPaymentFunc(ctx, in)
}

type mockSubUC struct {
	usecase.SubscriptionUseCase
	CancelFunc     func(ctx context.Context, actor usecase.Actor, id string) (*model.Subscription, error)
	ListByUserFunc func(ctx context.Context, actor usecase.Actor, userID string) ([]*model.Subscription, error)
	RenewFunc      func(ctx context.Context, actor usecase.Actor, id string) (*model.Subscription, error)
}

func (m *mockSubUC) Cancel(ctx context.Context, actor usecase.Actor, id string) (*model.Subscription, error) {
	return m.CancelFunc(ctx, actor, id)
}

func (m *mockSubUC) ListByUser(ctx context.Context, actor usecase.Actor, userID string) ([]*model.Subscription, error) {
	return m.ListByUserFunc(ctx, actor, userID)
}

func (m *mockSubUC) Renew(ctx context.Context, actor usecase.Actor, id string) (*model.Subscription, error) {
	return m.RenewFunc(ctx, actor, id)
}

type mockReceiptUC struct {
	usecase.ReceiptUseCase
	GenerateFunc func(ctx context.Context, orderID string) (*model.Receipt, []byte, error)
	ViewFunc     func(ctx context.Context, receiptID string) (*model.Receipt, []byte, error)
}

func (m *mockReceiptUC) Generate(ctx context.Context, orderID string) (*model.Receipt, []byte, error) {
	return m.GenerateFunc(ctx, orderID)
}

func (m *mockReceiptUC) View(ctx context.Context, receiptID string) (*model.Receipt, []byte, error) {
	return m.ViewFunc(ctx, receiptID)
}

type mockServiceUC struct {
	usecase.ServiceUseCase
	ListAllFunc func(ctx context.Context) ([]*model.Service, error)
}

func (m *mockServiceUC) ListAll(ctx context.Context) ([]*model.Service, error) {
	return m.ListAllFunc(ctx)
}

type mockContactUC struct {
	usecase.ContactUseCase
	SubmitFunc func(ctx context.Context, name, email string, serviceType model.ServiceType, platform, message string) (*model.Contact, error)
}

func (m *mockContactUC) Submit(ctx context.Context, name, email string, serviceType model.ServiceType, platform, message string) (*model.Contact, error) {
	return m.SubmitFunc(ctx, name, email, serviceType, platform, message)
}

type mockCountryUC struct {
	usecase.CountryUseCase
	ListAllFunc func(ctx context.Context) ([]*model.Country, error)
}

func (m *mockCountryUC) ListAll(ctx context.Context) ([]*model.Country, error) {
	return m.ListAllFunc(ctx)
}
