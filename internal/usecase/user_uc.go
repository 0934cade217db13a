package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/bcrypt"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/adapter"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

const (
	otpTTL        = 10 * time.Minute
	verifiedTTL   = 30 * time.Minute
	otpSendLimit  = 5
	otpSendWindow = time.Hour
	bcryptCost    = bcrypt.DefaultCost
)

// RateLimiter caps repeated OTP sends per address.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type RegisterInput struct {
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Password  string       `json:"password"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address"`
	CountryID string       `json:"countryId"`
	CallingID string       `json:"callingId"`
	Bio       string       `json:"bio"`
	Gender    model.Gender `json:"gender"`
}

type UpdateProfileInput struct {
	Name        *string       `json:"name,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	Address     *string       `json:"address,omitempty"`
	Bio         *string       `json:"bio,omitempty"`
	Gender      *model.Gender `json:"gender,omitempty"`
	OldPassword *string       `json:"oldPassword,omitempty"`
	NewPassword *string       `json:"newPassword,omitempty"`
}

type UserUseCase interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)

	// Password reset: OTP request, OTP check leaving a verified marker, then
	// the actual password update consuming that marker.
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyPasswordReset(ctx context.Context, email, code string) error
	UpdatePassword(ctx context.Context, email, newPassword string) error

	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error)
	List(ctx context.Context, f repository.UserListFilter) ([]*model.User, int, error)
}

type userUC struct {
	users     repository.UserRepository
	countries repository.CountryRepository
	otps      repository.OTPStore
	mailer    adapter.Mailer
	limiter   RateLimiter
}

func NewUserUseCase(
	users repository.UserRepository,
	countries repository.CountryRepository,
	otps repository.OTPStore,
	mailer adapter.Mailer,
	limiter RateLimiter,
) *userUC {
	return &userUC{users: users, countries: countries, otps: otps, mailer: mailer, limiter: limiter}
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	code := make([]byte, 6)
	for i := range buf {
		code[i] = '0' + buf[i]%10
	}
	return string(code), nil
}

func (u *userUC) sendOTP(ctx context.Context, purpose repository.OTPPurpose, email, subject string) error {
	email = model.NormalizeEmail(email)
	if !model.ValidEmail(email) {
		return domain.ErrInvalidArgument
	}
	if u.limiter != nil {
		key := fmt.Sprintf("rate_limit:otp:%s:%s", purpose, email)
		ok, err := u.limiter.Allow(ctx, key, otpSendLimit, otpSendWindow)
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
	if err := u.otps.Put(ctx, purpose, email, code, otpTTL); err != nil {
		return err
	}
	return u.mailer.SendOTP(ctx, email, subject, code)
}

func (u *userUC) RequestOTP(ctx context.Context, email string) error {
	return u.sendOTP(ctx, repository.OTPPurposeRegister, email, "Verify your email")
}

// VerifyOTP checks the registration code and upserts a verified stub user so
// registration can complete later.
func (u *userUC) VerifyOTP(ctx context.Context, email, code string) error {
	email = model.NormalizeEmail(email)
	ok, err := u.otps.Check(ctx, repository.OTPPurposeRegister, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidOTP
	}

	existing, err := u.users.FindByEmail(ctx, nil, email)
	switch {
	case err == nil:
		if existing.OTPVerified {
			return nil
		}
		existing.OTPVerified = true
		existing.UpdatedAt = time.Now()
		return u.users.Save(ctx, nil, existing)
	case errors.Is(err, domain.ErrNotFound):
		return u.users.Save(ctx, nil, model.NewStubUser(email))
	default:
		return err
	}
}

func (u *userUC) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := model.NormalizeEmail(in.Email)
	if !model.ValidEmail(email) || in.Password == "" {
		return nil, domain.ErrInvalidArgument
	}

	user, err := u.users.FindByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmailNotVerified
		}
		return nil, err
	}
	if !user.OTPVerified {
		return nil, domain.ErrEmailNotVerified
	}
	if user.Registered() {
		return nil, domain.ErrAlreadyExists
	}

	country, err := u.countries.FindByID(ctx, nil, in.CountryID)
	if err != nil {
		return nil, fmt.Errorf("resolve country: %w", err)
	}
	calling, err := u.countries.FindByID(ctx, nil, in.CallingID)
	if err != nil {
		return nil, fmt.Errorf("resolve calling code: %w", err)
	}

	if _, err := u.users.FindByPhone(ctx, nil, in.Phone); err == nil {
		return nil, domain.ErrPhoneInUse
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	if err := user.CompleteProfile(in.Name, string(hash), in.Phone, in.Address, in.Bio, in.Gender); err != nil {
		return nil, err
	}
	user.CountryID = country.ID
	user.Country = country.Name
	user.CallingID = calling.ID
	user.CallingCode = calling.CallingCode

	if err := u.users.Save(ctx, nil, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.ErrPhoneInUse
		}
		return nil, err
	}
	return user, nil
}

func (u *userUC) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := u.users.FindByEmail(ctx, nil, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.OTPVerified {
		return nil, domain.ErrEmailNotVerified
	}
	if !user.Registered() || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (u *userUC) RequestPasswordReset(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)
	// Only send to known accounts; the handler still answers 200 either way
	// so the endpoint does not leak which emails exist.
	if _, err := u.users.FindByEmail(ctx, nil, email); err != nil {
		return err
	}
	return u.sendOTP(ctx, repository.OTPPurposePasswordReset, email, "Password reset code")
}

func (u *userUC) VerifyPasswordReset(ctx context.Context, email, code string) error {
	email = model.NormalizeEmail(email)
	ok, err := u.otps.Check(ctx, repository.OTPPurposePasswordReset, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidOTP
	}
	return u.otps.MarkVerified(ctx, repository.OTPPurposePasswordReset, email, verifiedTTL)
}

func (u *userUC) UpdatePassword(ctx context.Context, email, newPassword string) error {
	email = model.NormalizeEmail(email)
	if newPassword == "" {
		return domain.ErrInvalidArgument
	}
	ok, err := u.otps.ConsumeVerified(ctx, repository.OTPPurposePasswordReset, email)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidOTP
	}
	user, err := u.users.FindByEmail(ctx, nil, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return u.users.Save(ctx, nil, user)
}

func (u *userUC) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.FindByID(ctx, nil, id)
}

func (u *userUC) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error) {
	user, err := u.users.FindByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	if in.Phone != nil && *in.Phone != user.Phone {
		if other, err := u.users.FindByPhone(ctx, nil, *in.Phone); err == nil && other.ID != user.ID {
			return nil, domain.ErrPhoneInUse
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		user.Phone = *in.Phone
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidArgument
		}
		user.Name = *in.Name
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Gender != nil {
		if !in.Gender.Valid() {
			return nil, domain.ErrInvalidArgument
		}
		user.Gender = *in.Gender
	}
	if in.NewPassword != nil {
		if in.OldPassword == nil {
			return nil, domain.ErrInvalidArgument
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*in.OldPassword)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.NewPassword), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now()
	if err := u.users.Save(ctx, nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUC) List(ctx context.Context, f repository.UserListFilter) ([]*model.User, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	users, err := u.users.List(ctx, nil, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.users.Count(ctx, nil, f.Search)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
