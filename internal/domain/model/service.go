package model

import (
	"strings"
	"time"

	"engagesphere/internal/domain"

	"github.com/google/uuid"
)

// ServiceContent is one bullet point in a service description.
type ServiceContent struct {
	ContentID string `json:"contentId"`
	Key       string `json:"key"`
}

// Service is a marketing entry on the public services page.
type Service struct {
	ID          string           `json:"serviceId"`
	Heading     string           `json:"serviceHeading"`
	Description string           `json:"serviceDescription"`
	Content     []ServiceContent `json:"serviceContent"`
	Logo        string           `json:"logo,omitempty"` // base64-encoded image
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func NewService(heading, description string, content []ServiceContent, logo string) (*Service, error) {
	if heading == "" || description == "" {
		return nil, domain.ErrInvalidArgument
	}
	for i := range content {
		if strings.TrimSpace(content[i].Key) == "" {
			return nil, domain.ErrInvalidArgument
		}
		if content[i].ContentID == "" {
			content[i].ContentID = uuid.NewString()
		}
	}
	now := time.Now()
	return &Service{
		ID:          uuid.NewString(),
		Heading:     heading,
		Description: description,
		Content:     content,
		Logo:        logo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// RemoveContent deletes one content entry by id; returns false if absent.
func (s *Service) RemoveContent(contentID string) bool {
	for i := range s.Content {
		if s.Content[i].ContentID == contentID {
			s.Content = append(s.Content[:i], s.Content[i+1:]...)
			s.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}
