package usecase

import (
	"context"

	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ ReceiptUseCase = (*receiptUC)(nil)

// ReceiptRenderer turns a stored receipt snapshot into PDF bytes.
type ReceiptRenderer interface {
	Render(r *model.Receipt) ([]byte, error)
}

type ReceiptUseCase interface {
	// Generate snapshots the payment into a new receipt and renders it.
	Generate(ctx context.Context, orderID string) (*model.Receipt, []byte, error)
	// View re-renders a previously generated receipt from its snapshot.
	View(ctx context.Context, receiptID string) (*model.Receipt, []byte, error)
}

type receiptUC struct {
	receipts repository.ReceiptRepository
	pays     repository.PaymentRepository
	users    repository.UserRepository
	plans    repository.PlanRepository
	renderer ReceiptRenderer
}

func NewReceiptUseCase(
	receipts repository.ReceiptRepository,
	pays repository.PaymentRepository,
	users repository.UserRepository,
	plans repository.PlanRepository,
	renderer ReceiptRenderer,
) *receiptUC {
	return &receiptUC{receipts: receipts, pays: pays, users: users, plans: plans, renderer: renderer}
}

func (u *receiptUC) Generate(ctx context.Context, orderID string) (*model.Receipt, []byte, error) {
	payment, err := u.pays.FindByOrderID(ctx, nil, orderID)
	if err != nil {
		return nil, nil, err
	}
	user, err := u.users.FindByID(ctx, nil, payment.UserID)
	if err != nil {
		return nil, nil, err
	}

	// Plan name and tier features are captured into the snapshot; a deleted
	// plan just leaves them empty rather than failing the receipt.
	planName := ""
	var features []string
	if plan, err := u.plans.FindByID(ctx, nil, payment.PlanID); err == nil {
		planName = plan.Name
		if tier := plan.Tier(payment.PricingID); tier != nil {
			features = tier.Features
			if tier.Name != "" {
				planName = plan.Name + " / " + tier.Name
			}
		}
	}

	receipt, err := model.NewReceipt(payment, user, planName, features)
	if err != nil {
		return nil, nil, err
	}
	if err := u.receipts.Save(ctx, nil, receipt); err != nil {
		return nil, nil, err
	}
	pdf, err := u.renderer.Render(receipt)
	if err != nil {
		return nil, nil, err
	}
	return receipt, pdf, nil
}

func (u *receiptUC) View(ctx context.Context, receiptID string) (*model.Receipt, []byte, error) {
	receipt, err := u.receipts.FindByID(ctx, nil, receiptID)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := u.renderer.Render(receipt)
	if err != nil {
		return nil, nil, err
	}
	return receipt, pdf, nil
}
