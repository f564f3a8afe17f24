// File: internal/repository/email/email_repository.go
package email

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/avelar/draftmail/internal/domain"
	"gorm.io/gorm"
)

var ErrEmailNotFound = errors.New("email not found")

type gormEmailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &gormEmailRepository{db: db}
}

func (r *gormEmailRepository) WithTx(tx *gorm.DB) EmailRepository {
	return &gormEmailRepository{db: tx}
}

func (r *gormEmailRepository) Create(ctx context.Context, email *domain.Email) (*domain.Email, error) {
	if err := r.validateEmailInput(email); err != nil {
		log.Printf("[EmailRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(email).Error; err != nil {
		log.Printf("[EmailRepository] Database error during email creation for chat %s: %v", email.ChatID, err)
		return nil, errors.New("database error creating email")
	}

	log.Printf("[EmailRepository] Email created successfully: %s for message %s", email.PublicID, email.AssistantMessageID)
	return email, nil
}

func (r *gormEmailRepository) Update(ctx context.Context, email *domain.Email) error {
	if email == nil || email.ID == 0 {
		return errors.New("invalid email ID")
	}

	if err := r.validateEmailInput(email); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result := r.db.WithContext(ctx).Save(email)
	if result.Error != nil {
		log.Printf("[EmailRepository] Database error updating email ID %d: %v", email.ID, result.Error)
		return errors.New("database error updating email")
	}

	if result.RowsAffected == 0 {
		return ErrEmailNotFound
	}

	return nil
}

func (r *gormEmailRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("invalid email ID")
	}

	result := r.db.WithContext(ctx).Delete(&domain.Email{}, id)
	if result.Error != nil {
		log.Printf("[EmailRepository] Database error deleting email ID %d: %v", id, result.Error)
		return errors.New("database error deleting email")
	}

	if result.RowsAffected == 0 {
		return ErrEmailNotFound
	}

	return nil
}

func (r *gormEmailRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Email, error) {
	if publicID == "" {
		return nil, errors.New("invalid email ID")
	}

	var email domain.Email
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&email).Error
	return r.handleFindError(err, &email, "FindByPublicID")
}

func (r *gormEmailRepository) FindByAssistantMessage(ctx context.Context, assistantMessageID string) (*domain.Email, error) {
	if assistantMessageID == "" {
		return nil, errors.New("invalid assistant message ID")
	}

	var email domain.Email
	err := r.db.WithContext(ctx).
		Where("assistant_message_id = ?", assistantMessageID).
		Order("id ASC").
		First(&email).Error
	return r.handleFindError(err, &email, "FindByAssistantMessage")
}

func (r *gormEmailRepository) FindByOwner(ctx context.Context, ownerUserID uint) ([]domain.Email, error) {
	if ownerUserID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var emails []domain.Email
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC, id DESC").
		Find(&emails).Error
	if err != nil {
		log.Printf("[EmailRepository] Database error finding emails for user ID %d: %v", ownerUserID, err)
		return nil, errors.New("database error fetching emails")
	}

	return emails, nil
}

func (r *gormEmailRepository) FindLatestForChat(ctx context.Context, chatID string, ownerUserID uint) (*domain.Email, error) {
	if chatID == "" || ownerUserID == 0 {
		return nil, errors.New("invalid chat ID or user ID")
	}

	var email domain.Email
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND owner_user_id = ?", chatID, ownerUserID).
		Order("updated_at DESC, id DESC").
		First(&email).Error
	return r.handleFindError(err, &email, "FindLatestForChat")
}

func (r *gormEmailRepository) DeleteByAssistantMessage(ctx context.Context, assistantMessageID string, ownerUserID uint) (int64, error) {
	if assistantMessageID == "" || ownerUserID == 0 {
		return 0, errors.New("invalid assistant message ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("assistant_message_id = ? AND owner_user_id = ?", assistantMessageID, ownerUserID).
		Delete(&domain.Email{})
	if result.Error != nil {
		log.Printf("[EmailRepository] Database error in cascade delete for message %s: %v", assistantMessageID, result.Error)
		return 0, errors.New("database error deleting linked emails")
	}

	if result.RowsAffected > 0 {
		log.Printf("[EmailRepository] Cascade deleted %d emails for message %s", result.RowsAffected, assistantMessageID)
	}
	return result.RowsAffected, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormEmailRepository) validateEmailInput(email *domain.Email) error {
	if email == nil {
		return errors.New("email cannot be nil")
	}
	if email.PublicID == "" {
		return errors.New("public ID is required")
	}
	if email.OwnerUserID == 0 {
		return errors.New("owner user ID is required")
	}
	if strings.TrimSpace(email.ChatID) == "" {
		return errors.New("chat ID is required")
	}
	if strings.TrimSpace(email.AssistantMessageID) == "" {
		return errors.New("assistant message reference is required")
	}
	return nil
}

// ===== ERROR HANDLING HELPERS =====

func (r *gormEmailRepository) handleFindError(err error, email *domain.Email, operation string) (*domain.Email, error) {
	if err == nil {
		return email, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmailNotFound
	}

	log.Printf("[EmailRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
