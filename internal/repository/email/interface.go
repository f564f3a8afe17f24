package email

import (
	"context"

	"github.com/avelar/draftmail/internal/domain"
	"gorm.io/gorm"
)

// EmailRepository handles generated email artifacts linked to assistant
// messages.
type EmailRepository interface {
	Create(ctx context.Context, email *domain.Email) (*domain.Email, error)
	Update(ctx context.Context, email *domain.Email) error
	Delete(ctx context.Context, id uint) error

	FindByPublicID(ctx context.Context, publicID string) (*domain.Email, error)
	FindByAssistantMessage(ctx context.Context, assistantMessageID string) (*domain.Email, error)
	FindByOwner(ctx context.Context, ownerUserID uint) ([]domain.Email, error)
	FindLatestForChat(ctx context.Context, chatID string, ownerUserID uint) (*domain.Email, error)

	// DeleteByAssistantMessage removes every email linked to the given
	// originating message and owned by the given user. Invoked from the
	// reconciliation cascade before the message row itself is deleted.
	DeleteByAssistantMessage(ctx context.Context, assistantMessageID string, ownerUserID uint) (int64, error)

	WithTx(tx *gorm.DB) EmailRepository
}
