package services

import (
	"context"
	"fmt"
	"strings"

	"physio-backend/internal/models"
	"physio-backend/internal/repositories"
)

// ContactService validates and stores contact form submissions.
type ContactService struct {
	repo *repositories.ContactRequestRepository
}

// NewContactService creates a new contact service
func NewContactService(repo *repositories.ContactRequestRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Submit validates and persists a contact request.
func (s *ContactService) Submit(ctx context.Context, req models.SubmitContactRequest, clientIP string) (*models.ContactRequest, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email address is required")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if len(message) > 5000 {
		return nil, fmt.Errorf("message exceeds 5000 characters")
	}

	request := &models.ContactRequest{
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Message:  message,
		ClientIP: clientIP,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("store contact request: %w", err)
	}
	return request, nil
}

// ListRecent returns recent submissions for the admin view.
func (s *ContactService) ListRecent(ctx context.Context, limit int) ([]models.ContactRequest, error) {
	return s.repo.ListRecent(ctx, limit)
}
