// File: internal/services/email_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/draftmail/internal/domain"
	emailrepo "github.com/avelar/draftmail/internal/repository/email"
	emailservice "github.com/avelar/draftmail/internal/services/email"
	"github.com/avelar/draftmail/internal/services/user_services"
)

// EmailService manages generated email artifacts. Each artifact is linked
// to exactly one assistant message; re-generation for the same message
// patches the existing record instead of duplicating it.
type EmailService struct {
	identity  *user_services.IdentityService
	emailRepo emailrepo.EmailRepository
	logger    Logger
}

func NewEmailService(identity *user_services.IdentityService, emailRepo emailrepo.EmailRepository, logger Logger) (*EmailService, error) {
	if identity == nil {
		return nil, emailservice.NewValidationError("constructor", "identity service is required")
	}
	if emailRepo == nil {
		return nil, emailservice.NewValidationError("constructor", "email repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &EmailService{identity: identity, emailRepo: emailRepo, logger: logger}, nil
}

// CreateOrUpdateLinked upserts the artifact for an assistant message and
// returns its storage reference. An existing artifact owned by the caller
// is patched in place, which keeps re-generation idempotent.
func (s *EmailService) CreateOrUpdateLinked(
	ctx context.Context,
	credential string,
	chatID string,
	assistantMessageRef string,
	name, description, tsxCode, htmlCode string,
) (string, error) {
	if strings.TrimSpace(chatID) == "" {
		return "", emailservice.NewValidationError("create_linked", "chat id is required")
	}
	if strings.TrimSpace(assistantMessageRef) == "" {
		return "", emailservice.NewValidationError("create_linked", "assistant message reference is required")
	}

	userID, err := s.identity.ResolveOrCreateUser(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return "", emailservice.NewAuthenticationError("create_linked")
		}
		return "", emailservice.NewStoreError("create_linked", "could not resolve caller identity", err)
	}

	now := time.Now()

	existing, err := s.emailRepo.FindByAssistantMessage(ctx, assistantMessageRef)
	if err != nil && !errors.Is(err, emailrepo.ErrEmailNotFound) {
		return "", emailservice.NewStoreError("create_linked", "could not look up linked email", err)
	}

	if existing != nil && existing.OwnerUserID == userID {
		existing.Name = name
		existing.Description = description
		existing.TSXCode = tsxCode
		existing.HTMLCode = htmlCode
		existing.UpdatedAt = now
		if err := s.emailRepo.Update(ctx, existing); err != nil {
			return "", emailservice.NewStoreError("create_linked", "could not patch linked email", err)
		}
		return existing.PublicID, nil
	}

	row := &domain.Email{
		PublicID:           uuid.NewString(),
		OwnerUserID:        userID,
		ChatID:             chatID,
		AssistantMessageID: assistantMessageRef,
		Name:               name,
		Description:        description,
		TSXCode:            tsxCode,
		HTMLCode:           htmlCode,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := s.emailRepo.Create(ctx, row); err != nil {
		return "", emailservice.NewStoreError("create_linked", "could not insert linked email", err)
	}

	s.logger.Info("linked email created", "chat_id", chatID, "email_id", row.PublicID)
	return row.PublicID, nil
}

// ListEmails returns the caller's emails, newest first. Anonymous callers
// get an empty list, never an error.
func (s *EmailService) ListEmails(ctx context.Context, credential string) ([]domain.Email, error) {
	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return []domain.Email{}, nil
		}
		return nil, emailservice.NewStoreError("list_emails", "could not resolve caller identity", err)
	}
	if userID == 0 {
		return []domain.Email{}, nil
	}

	emails, err := s.emailRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, emailservice.NewStoreError("list_emails", "could not load emails", err)
	}
	return emails, nil
}

// GetLatestForChat returns the caller's most recently updated email for a
// chat, or nil when none exists or the caller is anonymous.
func (s *EmailService) GetLatestForChat(ctx context.Context, credential, chatID string) (*domain.Email, error) {
	if strings.TrimSpace(chatID) == "" {
		return nil, emailservice.NewValidationError("latest_for_chat", "chat id is required")
	}

	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return nil, nil
		}
		return nil, emailservice.NewStoreError("latest_for_chat", "could not resolve caller identity", err)
	}
	if userID == 0 {
		return nil, nil
	}

	latest, err := s.emailRepo.FindLatestForChat(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, emailrepo.ErrEmailNotFound) {
			return nil, nil
		}
		return nil, emailservice.NewStoreError("latest_for_chat", "could not load latest email", err)
	}
	return latest, nil
}

// DeleteEmail removes one of the caller's emails by storage reference. A
// missing record and a foreign-owned record fail identically.
func (s *EmailService) DeleteEmail(ctx context.Context, credential, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return emailservice.NewValidationError("delete_email", "email id is required")
	}

	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return emailservice.NewAuthenticationError("delete_email")
		}
		return emailservice.NewStoreError("delete_email", "could not resolve caller identity", err)
	}
	if userID == 0 {
		return emailservice.NewUnauthorizedError("delete_email", userID)
	}

	existing, err := s.emailRepo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, emailrepo.ErrEmailNotFound) {
			return emailservice.NewUnauthorizedError("delete_email", userID)
		}
		return emailservice.NewStoreError("delete_email", "could not load email", err)
	}
	if existing.OwnerUserID != userID {
		return emailservice.NewUnauthorizedError("delete_email", userID)
	}

	if err := s.emailRepo.Delete(ctx, existing.ID); err != nil {
		return emailservice.NewStoreError("delete_email", "could not delete email", err)
	}
	return nil
}
