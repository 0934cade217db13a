package usecase

import (
	"context"

	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ ContactUseCase = (*contactUC)(nil)

type ContactUseCase interface {
	Submit(ctx context.Context, name, email string, serviceType model.ServiceType, platform, message string) (*model.Contact, error)
	ListAll(ctx context.Context) ([]*model.Contact, error)
}

type contactUC struct {
	contacts repository.ContactRepository
}

func NewContactUseCase(contacts repository.ContactRepository) *contactUC {
	return &contactUC{contacts: contacts}
}

func (u *contactUC) Submit(ctx context.Context, name, email string, serviceType model.ServiceType, platform, message string) (*model.Contact, error) {
	c, err := model.NewContact(name, email, serviceType, platform, message)
	if err != nil {
		return nil, err
	}
	if err := u.contacts.Save(ctx, nil, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *contactUC) ListAll(ctx context.Context) ([]*model.Contact, error) {
	return u.contacts.ListAll(ctx, nil)
}
