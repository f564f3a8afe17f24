// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/avelar/draftmail/internal/domain"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser signals that the token identifier already has a row.
// Concurrent first-contact inserts race on the unique index; callers treat
// this as "already exists, re-read".
var ErrDuplicateUser = errors.New("user already exists")

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.validateUserInput(user); err != nil {
		log.Printf("[UserRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		// Secure logging - credential never exposed
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	log.Printf("[UserRepository] User created successfully with ID: %d", user.ID)
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) FindByTokenIdentifier(ctx context.Context, tokenIdentifier string) (*domain.User, error) {
	if tokenIdentifier == "" {
		return nil, errors.New("invalid token identifier")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("token_identifier = ?", tokenIdentifier).First(&user).Error
	return r.handleFindError(err, &user, "FindByTokenIdentifier")
}

// ===== VALIDATION HELPERS =====

func (r *gormUserRepository) validateUserInput(user *domain.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	if strings.TrimSpace(user.TokenIdentifier) == "" {
		return errors.New("token identifier is required")
	}
	if len(user.TokenIdentifier) > 255 {
		return errors.New("token identifier too long")
	}
	return nil
}

// isUniqueViolation detects the unique-index race on token_identifier.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ===== ERROR HANDLING HELPERS =====

// handleFindError maps record-not-found to the sentinel without leaking
// driver details to callers.
func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	log.Printf("[UserRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
