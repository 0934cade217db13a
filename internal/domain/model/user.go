package model

import (
	"strings"
	"time"

	"engagesphere/internal/domain"

	"github.com/google/uuid"
)

// Gender is stored as a small integer: 0 male, 1 female, 2 other.
type Gender int

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
	GenderOther  Gender = 2
)

func (g Gender) Valid() bool { return g >= GenderMale && g <= GenderOther }

// User is a marketplace customer. A row is first created as a stub during the
// OTP flow (only email + otp_verified) and completed by registration.
type User struct {
	ID           string `json:"userId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	CountryID    string `json:"countryId"`
	Country      string `json:"country"`
	CallingID    string `json:"callingId"`
	CallingCode  string `json:"callingCode"`
	Bio          string `json:"bio"`
	Gender       Gender `json:"gender"`
	OTPVerified  bool   `json:"otpVerified"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewStubUser creates the minimal row written when an OTP is verified.
func NewStubUser(email string) *User {
	now := time.Now()
	return &User{
		ID:          uuid.NewString(),
		Email:       NormalizeEmail(email),
		OTPVerified: true,
		Role:        "user",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Registered reports whether the profile was completed after OTP verification.
func (u *User) Registered() bool { return u.Name != "" && u.PasswordHash != "" }

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ValidEmail is a shallow shape check; real validation is delivery.
func ValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

// CompleteProfile applies registration fields to a verified stub.
func (u *User) CompleteProfile(name, passwordHash, phone, address, bio string, gender Gender) error {
	if !u.OTPVerified {
		return domain.ErrEmailNotVerified
	}
	if name == "" || passwordHash == "" || phone == "" || !gender.Valid() {
		return domain.ErrInvalidArgument
	}
	u.Name = name
	u.PasswordHash = passwordHash
	u.Phone = strings.TrimSpace(phone)
	u.Address = address
	u.Bio = bio
	u.Gender = gender
	u.UpdatedAt = time.Now()
	return nil
}
