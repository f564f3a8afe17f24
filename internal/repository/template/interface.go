package template

import (
	"context"

	"github.com/avelar/draftmail/internal/domain"
)

// TemplateRepository handles saved style-reference templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.EmailTemplate) (*domain.EmailTemplate, error)
	Delete(ctx context.Context, id uint) error

	FindByPublicID(ctx context.Context, publicID string) (*domain.EmailTemplate, error)
	FindByOwner(ctx context.Context, ownerUserID uint) ([]domain.EmailTemplate, error)
	FindByPublicIDs(ctx context.Context, publicIDs []string, ownerUserID uint) ([]domain.EmailTemplate, error)
}
