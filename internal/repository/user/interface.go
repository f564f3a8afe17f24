package user

import (
	"context"

	"github.com/avelar/draftmail/internal/domain"
)

// UserRepository handles user identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByTokenIdentifier(ctx context.Context, tokenIdentifier string) (*domain.User, error)
}
