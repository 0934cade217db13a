package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/adapter"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

type CreateOrderInput struct {
	UserID    string `json:"userId"`
	PlanID    string `json:"planId"`
	PricingID string `json:"pricingId"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
}

type VerifyPaymentInput struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type OrderUseCase interface {
	// CreateOrder registers a gateway order and persists the pending
	// Payment+Subscription pair that shares its order id.
	CreateOrder(ctx context.Context, in CreateOrderInput) (*adapter.GatewayOrder, *model.Payment, *model.Subscription, error)
	// VerifyPayment settles an order from the checkout callback. The bool
	// reports a replayed callback: the order was already settled and the
	// stored pair is returned unchanged.
	VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*model.Payment, *model.Subscription, bool, error)
}

type orderUC struct {
	users   repository.UserRepository
	plans   repository.PlanRepository
	pays    repository.PaymentRepository
	subs    repository.SubscriptionRepository
	gateway adapter.PaymentGateway
	tm      repository.TransactionManager
}

func NewOrderUseCase(
	users repository.UserRepository,
	plans repository.PlanRepository,
	pays repository.PaymentRepository,
	subs repository.SubscriptionRepository,
	gateway adapter.PaymentGateway,
	tm repository.TransactionManager,
) *orderUC {
	return &orderUC{users: users, plans: plans, pays: pays, subs: subs, gateway: gateway, tm: tm}
}

func (u *orderUC) CreateOrder(ctx context.Context, in CreateOrderInput) (*adapter.GatewayOrder, *model.Payment, *model.Subscription, error) {
	if in.UserID == "" || in.PlanID == "" || in.PricingID == "" {
		return nil, nil, nil, domain.ErrInvalidArgument
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	user, err := u.users.FindByID(ctx, nil, in.UserID)
	if err != nil {
		return nil, nil, nil, err
	}
	plan, err := u.plans.FindByID(ctx, nil, in.PlanID)
	if err != nil {
		return nil, nil, nil, err
	}
	tier := plan.Tier(in.PricingID)
	if tier == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	amount, err := model.ParsePriceMinor(tier.Price)
	if err != nil {
		return nil, nil, nil, err
	}

	receipt := in.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%s_%d", user.ID, time.Now().Unix())
	}
	order, err := u.gateway.CreateOrder(ctx, amount, currency, receipt)
	if err != nil {
		return nil, nil, nil, err
	}

	payment := &model.Payment{
		OrderID:   order.ID,
		Amount:    amount,
		Currency:  currency,
		Receipt:   receipt,
		UserID:    user.ID,
		PlanID:    plan.ID,
		PricingID: in.PricingID,
		Status:    model.PaymentStatusCreated,
		CreatedAt: time.Now(),
	}
	sub, err := model.NewPendingSubscription(user.ID, plan.ID, in.PricingID, order.ID, currency, amount)
	if err != nil {
		return nil, nil, nil, err
	}

	// Both rows or neither.
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.pays.Save(ctx, tx, payment); err != nil {
			return err
		}
		return u.subs.Save(ctx, tx, sub)
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return order, payment, sub, nil
}

func (u *orderUC) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*model.Payment, *model.Subscription, bool, error) {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return nil, nil, false, domain.ErrInvalidArgument
	}

	payment, err := u.pays.FindByOrderID(ctx, nil, in.OrderID)
	if err != nil {
		return nil, nil, false, err
	}

	if !u.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		if payment.Status == model.PaymentStatusCreated {
			if err := u.pays.UpdateStatus(ctx, nil, in.OrderID, model.PaymentStatusFailed, &in.PaymentID, nil, nil); err != nil {
				return nil, nil, false, err
			}
			payment.Status = model.PaymentStatusFailed
		}
		return payment, nil, false, domain.ErrInvalidSignature
	}

	gw, err := u.gateway.FetchPayment(ctx, in.PaymentID)
	if err != nil {
		return nil, nil, false, err
	}
	if gw.Status != "captured" {
		// Record the provider's status verbatim; the order stays settleable
		// only through another created->paid transition, which this is not.
		if payment.Status == model.PaymentStatusCreated {
			status := model.PaymentStatus(gw.Status)
			if err := u.pays.UpdateStatus(ctx, nil, in.OrderID, status, &in.PaymentID, nil, nil); err != nil {
				return nil, nil, false, err
			}
			payment.Status = status
			payment.PaymentID = in.PaymentID
		}
		return payment, nil, false, domain.ErrPaymentNotCaptured
	}

	plan, err := u.plans.FindByID(ctx, nil, payment.PlanID)
	if err != nil {
		return nil, nil, false, err
	}

	var sub *model.Subscription
	now := time.Now()
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		moved, err := u.pays.MarkPaidIfCreated(ctx, tx, in.OrderID, in.PaymentID, in.Signature, now)
		if err != nil {
			return err
		}
		if !moved {
			// Already settled (double callback); report the stored state.
			return domain.ErrAlreadyExists
		}
		sub, err = u.subs.FindByOrderID(ctx, tx, in.OrderID)
		if err != nil {
			return err
		}
		sub.Activate(in.PaymentID, now, plan.ExpiryFrom(now))
		return u.subs.Save(ctx, tx, sub)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			payment, perr := u.pays.FindByOrderID(ctx, nil, in.OrderID)
			if perr != nil {
				return nil, nil, false, perr
			}
			sub, serr := u.subs.FindByOrderID(ctx, nil, in.OrderID)
			if serr != nil {
				return payment, nil, true, nil
			}
			return payment, sub, true, nil
		}
		return nil, nil, false, err
	}

	payment.Status = model.PaymentStatusPaid
	payment.PaymentID = in.PaymentID
	payment.Signature = in.Signature
	payment.PaidAt = &now
	return payment, sub, false, nil
}
