// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/avelar/draftmail/internal/domain"
	"gorm.io/gorm"
)

// MessageRepository handles transcript entries.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	Update(ctx context.Context, message *domain.Message) error
	Delete(ctx context.Context, id uint) error

	// FindByChatID returns every stored message for a chat regardless of
	// owner; reconciliation enforces ownership row by row.
	FindByChatID(ctx context.Context, chatID string) ([]domain.Message, error)

	// FindOwnedByChatID returns the caller's messages for a chat ordered
	// ascending by creation time.
	FindOwnedByChatID(ctx context.Context, chatID string, ownerUserID uint) ([]domain.Message, error)

	CountByChatID(ctx context.Context, chatID string) (int64, error)

	WithTx(tx *gorm.DB) MessageRepository
}
