// File: internal/repository/template/template_repository.go
package template

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/avelar/draftmail/internal/domain"
	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("template not found")

type gormTemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &gormTemplateRepository{db: db}
}

func (r *gormTemplateRepository) Create(ctx context.Context, template *domain.EmailTemplate) (*domain.EmailTemplate, error) {
	if err := r.validateTemplateInput(template); err != nil {
		log.Printf("[TemplateRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		log.Printf("[TemplateRepository] Database error during template creation for user ID %d: %v", template.OwnerUserID, err)
		return nil, errors.New("database error creating template")
	}

	log.Printf("[TemplateRepository] Template created successfully: %s for user: %d", template.PublicID, template.OwnerUserID)
	return template, nil
}

func (r *gormTemplateRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("invalid template ID")
	}

	result := r.db.WithContext(ctx).Delete(&domain.EmailTemplate{}, id)
	if result.Error != nil {
		log.Printf("[TemplateRepository] Database error deleting template ID %d: %v", id, result.Error)
		return errors.New("database error deleting template")
	}

	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

func (r *gormTemplateRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.EmailTemplate, error) {
	if publicID == "" {
		return nil, errors.New("invalid template ID")
	}

	var template domain.EmailTemplate
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&template).Error
	return r.handleFindError(err, &template, "FindByPublicID")
}

func (r *gormTemplateRepository) FindByOwner(ctx context.Context, ownerUserID uint) ([]domain.EmailTemplate, error) {
	if ownerUserID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var templates []domain.EmailTemplate
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("updated_at DESC, id DESC").
		Find(&templates).Error
	if err != nil {
		log.Printf("[TemplateRepository] Database error finding templates for user ID %d: %v", ownerUserID, err)
		return nil, errors.New("database error fetching templates")
	}

	return templates, nil
}

func (r *gormTemplateRepository) FindByPublicIDs(ctx context.Context, publicIDs []string, ownerUserID uint) ([]domain.EmailTemplate, error) {
	if ownerUserID == 0 {
		return nil, errors.New("invalid user ID")
	}
	if len(publicIDs) == 0 {
		return nil, nil
	}

	var templates []domain.EmailTemplate
	err := r.db.WithContext(ctx).
		Where("public_id IN ? AND owner_user_id = ?", publicIDs, ownerUserID).
		Find(&templates).Error
	if err != nil {
		log.Printf("[TemplateRepository] Database error finding templates by IDs for user ID %d: %v", ownerUserID, err)
		return nil, errors.New("database error fetching templates")
	}

	return templates, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormTemplateRepository) validateTemplateInput(template *domain.EmailTemplate) error {
	if template == nil {
		return errors.New("template cannot be nil")
	}
	if template.PublicID == "" {
		return errors.New("public ID is required")
	}
	if template.OwnerUserID == 0 {
		return errors.New("owner user ID is required")
	}
	if strings.TrimSpace(template.Name) == "" {
		return errors.New("template name is required")
	}
	return nil
}

// ===== ERROR HANDLING HELPERS =====

func (r *gormTemplateRepository) handleFindError(err error, template *domain.EmailTemplate, operation string) (*domain.EmailTemplate, error) {
	if err == nil {
		return template, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}

	log.Printf("[TemplateRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
