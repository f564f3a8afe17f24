// File: internal/services/user_services/identity_service.go
package user_services

import (
	"context"
	"errors"
	"time"

	"github.com/avelar/draftmail/internal/domain"
	"github.com/avelar/draftmail/internal/repository/user"
)

// IdentityService maps the opaque credential presented by a caller to a
// stable internal user ID. Users are created lazily on first write and
// never deleted here.
type IdentityService struct {
	userRepo user.UserRepository
	logger   Logger
}

func NewIdentityService(userRepo user.UserRepository, logger Logger) *IdentityService {
	return &IdentityService{userRepo: userRepo, logger: logger}
}

// ResolveIdentity returns the user ID for the credential, or zero when the
// credential is valid but no user record exists yet. Pure read, no side
// effects. Fails with ErrAuthenticationRequired on an empty credential.
func (s *IdentityService) ResolveIdentity(ctx context.Context, credential string) (uint, error) {
	if credential == "" {
		return 0, ErrAuthenticationRequired
	}

	existing, err := s.userRepo.FindByTokenIdentifier(ctx, credential)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return existing.ID, nil
}

// ResolveOrCreateUser returns the user ID for the credential, inserting a
// fresh user record if none exists. Idempotent per credential: a lost race
// on the unique credential index is resolved by re-reading the winner.
func (s *IdentityService) ResolveOrCreateUser(ctx context.Context, credential string) (uint, error) {
	existingID, err := s.ResolveIdentity(ctx, credential)
	if err != nil {
		return 0, err
	}
	if existingID != 0 {
		return existingID, nil
	}

	now := time.Now()
	created, err := s.userRepo.Create(ctx, &domain.User{
		TokenIdentifier: credential,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUser) {
			// Another request created the row first; re-read it.
			winner, readErr := s.userRepo.FindByTokenIdentifier(ctx, credential)
			if readErr != nil {
				return 0, readErr
			}
			return winner.ID, nil
		}
		return 0, err
	}

	s.logger.Info("user created on first contact", "user_id", created.ID)
	return created.ID, nil
}
