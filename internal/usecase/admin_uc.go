package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/adapter"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ AdminUseCase = (*adminUC)(nil)

type AdminUseCase interface {
	Login(ctx context.Context, email, password string) (*model.Admin, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	UpdateEmail(ctx context.Context, adminID, newEmail string) (*model.Admin, error)
	UpdatePassword(ctx context.Context, adminID, oldPassword, newPassword string) error
	GetByID(ctx context.Context, id string) (*model.Admin, error)
}

type adminUC struct {
	admins  repository.AdminRepository
	otps    repository.OTPStore
	mailer  adapter.Mailer
	limiter RateLimiter
}

func NewAdminUseCase(admins repository.AdminRepository, otps repository.OTPStore, mailer adapter.Mailer, limiter RateLimiter) *adminUC {
	return &adminUC{admins: admins, otps: otps, mailer: mailer, limiter: limiter}
}

func (a *adminUC) Login(ctx context.Context, email, password string) (*model.Admin, error) {
	admin, err := a.admins.FindByEmail(ctx, nil, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return admin, nil
}

func (a *adminUC) ForgotPassword(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)
	if _, err := a.admins.FindByEmail(ctx, nil, email); err != nil {
		return err
	}
	if a.limiter != nil {
		key := fmt.Sprintf("rate_limit:otp:%s:%s", repository.OTPPurposeAdminReset, email)
		ok, err := a.limiter.Allow(ctx, key, otpSendLimit, otpSendWindow)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrOperationFailed
		}
	}
	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := a.otps.Put(ctx, repository.OTPPurposeAdminReset, email, code, otpTTL); err != nil {
		return err
	}
	return a.mailer.SendOTP(ctx, email, "Admin password reset code", code)
}

func (a *adminUC) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = model.NormalizeEmail(email)
	if newPassword == "" {
		return domain.ErrInvalidArgument
	}
	ok, err := a.otps.Check(ctx, repository.OTPPurposeAdminReset, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidOTP
	}
	admin, err := a.admins.FindByEmail(ctx, nil, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	admin.UpdatedAt = time.Now()
	return a.admins.Save(ctx, nil, admin)
}

// UpdateEmail changes the login email; the handler mints a fresh token since
// the old one carries the previous address.
func (a *adminUC) UpdateEmail(ctx context.Context, adminID, newEmail string) (*model.Admin, error) {
	newEmail = model.NormalizeEmail(newEmail)
	if !model.ValidEmail(newEmail) {
		return nil, domain.ErrInvalidArgument
	}
	admin, err := a.admins.FindByID(ctx, nil, adminID)
	if err != nil {
		return nil, err
	}
	admin.Email = newEmail
	admin.UpdatedAt = time.Now()
	if err := a.admins.Save(ctx, nil, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (a *adminUC) UpdatePassword(ctx context.Context, adminID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidArgument
	}
	admin, err := a.admins.FindByID(ctx, nil, adminID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	admin.UpdatedAt = time.Now()
	return a.admins.Save(ctx, nil, admin)
}

func (a *adminUC) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	return a.admins.FindByID(ctx, nil, id)
}
