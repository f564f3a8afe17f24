package chat

import (
	"context"

	"github.com/avelar/draftmail/internal/domain"
	"gorm.io/gorm"
)

// ChatRepository handles chat thread records.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByChatID(ctx context.Context, chatID string) (*domain.Chat, error)
	FindByOwner(ctx context.Context, ownerUserID uint) ([]domain.Chat, error)
	Update(ctx context.Context, chat *domain.Chat) error

	// WithTx returns a copy of the repository bound to the given
	// transaction handle.
	WithTx(tx *gorm.DB) ChatRepository
}
