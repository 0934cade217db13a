package model

import (
	"time"

	"engagesphere/internal/domain"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceTypeGrowth       ServiceType = "growth"
	ServiceTypeConsultation ServiceType = "consultation"
	ServiceTypeManagement   ServiceType = "management"
	ServiceTypeSecurity     ServiceType = "security"
	ServiceTypeCustom       ServiceType = "custom"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeGrowth, ServiceTypeConsultation, ServiceTypeManagement, ServiceTypeSecurity, ServiceTypeCustom:
		return true
	}
	return false
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID          string      `json:"contactId"`
	Name        string      `json:"user_name"`
	Email       string      `json:"user_email"`
	ServiceType ServiceType `json:"serviceType"`
	Platform    string      `json:"platform"`
	Message     string      `json:"message"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func NewContact(name, email string, serviceType ServiceType, platform, message string) (*Contact, error) {
	email = NormalizeEmail(email)
	if name == "" || platform == "" || message == "" || !serviceType.Valid() || !ValidEmail(email) {
		return nil, domain.ErrInvalidArgument
	}
	return &Contact{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		ServiceType: serviceType,
		Platform:    platform,
		Message:     message,
		CreatedAt:   time.Now(),
	}, nil
}
