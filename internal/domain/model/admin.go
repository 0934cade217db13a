package model

import (
	"time"

	"engagesphere/internal/domain"

	"github.com/google/uuid"
)

// Admin is a back-office operator account.
type Admin struct {
	ID           string    `json:"adminId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewAdmin(email, passwordHash string) (*Admin, error) {
	email = NormalizeEmail(email)
	if email == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
