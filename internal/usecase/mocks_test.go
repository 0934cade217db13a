//go:build !integration

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/adapter"
	"engagesphere/internal/domain/ports/repository"
)

// ---- transaction manager ----

// memTM runs the function directly; the in-memory repos ignore tx handles.
type memTM struct{}

func (memTM) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

// ---- users ----

type memUserRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.User // by ID
	saveErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, _ repository.Tx, u *model.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, _ repository.Tx, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) FindByPhone(ctx context.Context, _ repository.Tx, phone string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Phone != "" && u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) List(ctx context.Context, _ repository.Tx, f repository.UserListFilter) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Name+u.Email), strings.ToLower(f.Search)) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *memUserRepo) Count(ctx context.Context, _ repository.Tx, search string) (int, error) {
	us, _ := m.List(ctx, nil, repository.UserListFilter{Search: search})
	return len(us), nil
}

// ---- admins ----

type memAdminRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{store: make(map[string]*model.Admin)}
}

func (m *memAdminRepo) Save(ctx context.Context, _ repository.Tx, a *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memAdminRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAdminRepo) FindByEmail(ctx context.Context, _ repository.Tx, email string) (*model.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ---- plans ----

type memPlanRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Plan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{store: make(map[string]*model.Plan)}
}

func (m *memPlanRepo) Save(ctx context.Context, _ repository.Tx, p *model.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Pricing = append([]model.PricingTier(nil), p.Pricing...)
	m.store[p.ID] = &cp
	return nil
}

func (m *memPlanRepo) Delete(ctx context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memPlanRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	cp.Pricing = append([]model.PricingTier(nil), p.Pricing...)
	return &cp, nil
}

func (m *memPlanRepo) FindByName(ctx context.Context, _ repository.Tx, name string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPlanRepo) FindByPricingID(ctx context.Context, _ repository.Tx, pricingID string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		for _, t := range p.Pricing {
			if t.PricingID == pricingID {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPlanRepo) List(ctx context.Context, _ repository.Tx, search string, offset, limit int) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Plan
	for _, p := range m.store {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memPlanRepo) Count(ctx context.Context, _ repository.Tx, search string) (int, error) {
	ps, _ := m.List(ctx, nil, search, 0, 0)
	return len(ps), nil
}

// ---- payments ----

type memPaymentRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Payment // by OrderID
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{store: make(map[string]*model.Payment)}
}

func (m *memPaymentRepo) Save(ctx context.Context, _ repository.Tx, p *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.OrderID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *p
	m.store[p.OrderID] = &cp
	return nil
}

func (m *memPaymentRepo) FindByOrderID(ctx context.Context, _ repository.Tx, orderID string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPaymentRepo) UpdateStatus(ctx context.Context, _ repository.Tx, orderID string, status model.PaymentStatus, paymentID, signature *string, paidAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	if paymentID != nil {
		p.PaymentID = *paymentID
	}
	if signature != nil {
		p.Signature = *signature
	}
	if paidAt != nil {
		p.PaidAt = paidAt
	}
	return nil
}

func (m *memPaymentRepo) MarkPaidIfCreated(ctx context.Context, _ repository.Tx, orderID, paymentID, signature string, paidAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[orderID]
	if !ok || p.Status != model.PaymentStatusCreated {
		return false, nil
	}
	p.Status = model.PaymentStatusPaid
	p.PaymentID = paymentID
	p.Signature = signature
	p.PaidAt = &paidAt
	return true, nil
}

// ---- subscriptions ----

type memSubRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Subscription
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{store: make(map[string]*model.Subscription)}
}

func (m *memSubRepo) Save(ctx context.Context, _ repository.Tx, s *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *memSubRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubRepo) FindByOrderID(ctx context.Context, _ repository.Tx, orderID string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.OrderID == orderID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSubRepo) FindLatestByUser(ctx context.Context, _ repository.Tx, userID string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *model.Subscription
	for _, s := range m.store {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memSubRepo) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memSubRepo) CountByStatus(ctx context.Context, _ repository.Tx) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int)
	for _, s := range m.store {
		out[string(s.Status)]++
	}
	return out, nil
}

// ---- receipts ----

type memReceiptRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Receipt
}

func newMemReceiptRepo() *memReceiptRepo {
	return &memReceiptRepo{store: make(map[string]*model.Receipt)}
}

func (m *memReceiptRepo) Save(ctx context.Context, _ repository.Tx, r *model.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store[r.ID] = &cp
	return nil
}

func (m *memReceiptRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// ---- countries ----

type memCountryRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Country
}

func newMemCountryRepo() *memCountryRepo {
	return &memCountryRepo{store: make(map[string]*model.Country)}
}

func (m *memCountryRepo) Save(ctx context.Context, _ repository.Tx, c *model.Country) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.store[c.ID] = &cp
	return nil
}

func (m *memCountryRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCountryRepo) ListAll(ctx context.Context, _ repository.Tx) ([]*model.Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Country
	for _, c := range m.store {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ---- contacts ----

type memContactRepo struct {
	mu    sync.RWMutex
	items []*model.Contact
}

func newMemContactRepo() *memContactRepo { return &memContactRepo{} }

func (m *memContactRepo) Save(ctx context.Context, _ repository.Tx, c *model.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.items = append(m.items, &cp)
	return nil
}

func (m *memContactRepo) ListAll(ctx context.Context, _ repository.Tx) ([]*model.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Contact, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		cp := *m.items[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ---- services ----

type memServiceRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Service
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{store: make(map[string]*model.Service)}
}

func (m *memServiceRepo) Save(ctx context.Context, _ repository.Tx, s *model.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Content = append([]model.ServiceContent(nil), s.Content...)
	m.store[s.ID] = &cp
	return nil
}

func (m *memServiceRepo) Delete(ctx context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memServiceRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	cp.Content = append([]model.ServiceContent(nil), s.Content...)
	return &cp, nil
}

func (m *memServiceRepo) ListAll(ctx context.Context, _ repository.Tx) ([]*model.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Service
	for _, s := range m.store {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Heading < out[j].Heading })
	return out, nil
}

// ---- otp store ----

type memOTPStore struct {
	mu       sync.Mutex
	codes    map[string]string
	verified map[string]bool
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{codes: make(map[string]string), verified: make(map[string]bool)}
}

func otpKey(purpose repository.OTPPurpose, email string) string {
	return string(purpose) + ":" + email
}

func (m *memOTPStore) Put(ctx context.Context, purpose repository.OTPPurpose, email, code string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[otpKey(purpose, email)] = code
	return nil
}

func (m *memOTPStore) Check(ctx context.Context, purpose repository.OTPPurpose, email, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := otpKey(purpose, email)
	if m.codes[k] != code || code == "" {
		return false, nil
	}
	delete(m.codes, k)
	return true, nil
}

func (m *memOTPStore) MarkVerified(ctx context.Context, purpose repository.OTPPurpose, email string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verified[otpKey(purpose, email)] = true
	return nil
}

func (m *memOTPStore) ConsumeVerified(ctx context.Context, purpose repository.OTPPurpose, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := otpKey(purpose, email)
	if !m.verified[k] {
		return false, nil
	}
	delete(m.verified, k)
	return true, nil
}

// ---- mailer ----

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // recipients
	codes map[string]string
	err   error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: make(map[string]string)}
}

func (f *fakeMailer) SendOTP(ctx context.Context, to, subject, code string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	f.codes[to] = code
	return nil
}

func (f *fakeMailer) lastCode(to string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[to]
}

// ---- payment gateway ----

type fakeGateway struct {
	mu        sync.Mutex
	orderSeq  int
	orders    map[string]*adapter.GatewayOrder
	payments  map[string]*adapter.GatewayPayment
	validSigs map[string]bool // "orderID|paymentID|signature"
	createErr error
	fetchErr  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		orders:    make(map[string]*adapter.GatewayOrder),
		payments:  make(map[string]*adapter.GatewayPayment),
		validSigs: make(map[string]bool),
	}
}

func (f *fakeGateway) Name() string { return "fake" }

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*adapter.GatewayOrder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderSeq++
	o := &adapter.GatewayOrder{
		ID:       fmt.Sprintf("order_%d", f.orderSeq),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeGateway) FetchPayment(ctx context.Context, paymentID string) (*adapter.GatewayPayment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validSigs[orderID+"|"+paymentID+"|"+signature]
}

// allow registers a valid signature and a gateway-side payment record.
func (f *fakeGateway) allow(orderID, paymentID, signature, status string, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validSigs[orderID+"|"+paymentID+"|"+signature] = true
	f.payments[paymentID] = &adapter.GatewayPayment{
		ID:      paymentID,
		OrderID: orderID,
		Amount:  amount,
		Status:  status,
	}
}

// ---- receipt renderer ----

type fakeRenderer struct{}

func (fakeRenderer) Render(r *model.Receipt) ([]byte, error) {
	return []byte("%PDF-fake " + r.Number), nil
}

// ---- rate limiter ----

type allowAll struct{}

func (allowAll) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

type denyAll struct{}

func (denyAll) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}
