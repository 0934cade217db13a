package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
)

// Compile-time check
var _ ServiceUseCase = (*serviceUC)(nil)

type UpdateServiceInput struct {
	Heading     *string                `json:"serviceHeading,omitempty"`
	Description *string                `json:"serviceDescription,omitempty"`
	Content     []model.ServiceContent `json:"serviceContent,omitempty"` // full replacement when present
	Logo        *string                `json:"logo,omitempty"`
}

type ServiceUseCase interface {
	Create(ctx context.Context, heading, description string, content []model.ServiceContent, logo string) (*model.Service, error)
	Update(ctx context.Context, serviceID string, in UpdateServiceInput) (*model.Service, error)
	Delete(ctx context.Context, serviceID string) error
	DeleteContent(ctx context.Context, serviceID, contentID string) (*model.Service, error)
	GetByID(ctx context.Context, serviceID string) (*model.Service, error)
	ListAll(ctx context.Context) ([]*model.Service, error)
}

type serviceUC struct {
	services repository.ServiceRepository
}

func NewServiceUseCase(services repository.ServiceRepository) *serviceUC {
	return &serviceUC{services: services}
}

func (u *serviceUC) Create(ctx context.Context, heading, description string, content []model.ServiceContent, logo string) (*model.Service, error) {
	svc, err := model.NewService(heading, description, content, logo)
	if err != nil {
		return nil, err
	}
	if err := u.services.Save(ctx, nil, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (u *serviceUC) Update(ctx context.Context, serviceID string, in UpdateServiceInput) (*model.Service, error) {
	svc, err := u.services.FindByID(ctx, nil, serviceID)
	if err != nil {
		return nil, err
	}
	if in.Heading != nil {
		if *in.Heading == "" {
			return nil, domain.ErrInvalidArgument
		}
		svc.Heading = *in.Heading
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, domain.ErrInvalidArgument
		}
		svc.Description = *in.Description
	}
	if in.Content != nil {
		for i := range in.Content {
			if strings.TrimSpace(in.Content[i].Key) == "" {
				return nil, domain.ErrInvalidArgument
			}
			if in.Content[i].ContentID == "" {
				in.Content[i].ContentID = uuid.NewString()
			}
		}
		svc.Content = in.Content
	}
	if in.Logo != nil {
		svc.Logo = *in.Logo
	}
	svc.UpdatedAt = time.Now()
	if err := u.services.Save(ctx, nil, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (u *serviceUC) Delete(ctx context.Context, serviceID string) error {
	return u.services.Delete(ctx, nil, serviceID)
}

func (u *serviceUC) DeleteContent(ctx context.Context, serviceID, contentID string) (*model.Service, error) {
	svc, err := u.services.FindByID(ctx, nil, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.RemoveContent(contentID) {
		return nil, domain.ErrNotFound
	}
	if err := u.services.Save(ctx, nil, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (u *serviceUC) GetByID(ctx context.Context, serviceID string) (*model.Service, error) {
	return u.services.FindByID(ctx, nil, serviceID)
}

func (u *serviceUC) ListAll(ctx context.Context) ([]*model.Service, error) {
	return u.services.ListAll(ctx, nil)
}
