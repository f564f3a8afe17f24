// File: internal/services/transcript_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelar/draftmail/internal/domain"
	chatrepo "github.com/avelar/draftmail/internal/repository/chat"
	emailrepo "github.com/avelar/draftmail/internal/repository/email"
	messagerepo "github.com/avelar/draftmail/internal/repository/message"
	"github.com/avelar/draftmail/internal/services/transcript"
	"github.com/avelar/draftmail/internal/services/user_services"
)

// TranscriptService reconciles the full client-supplied message list for a
// chat against stored state. Each sync call runs as a single transaction:
// chat upsert, message inserts/patches/deletes and the cascading email
// deletes commit together or not at all.
type TranscriptService struct {
	config      *transcript.Config
	db          *gorm.DB
	identity    *user_services.IdentityService
	chatRepo    chatrepo.ChatRepository
	messageRepo messagerepo.MessageRepository
	emailRepo   emailrepo.EmailRepository
	logger      Logger
}

func NewTranscriptService(
	db *gorm.DB,
	identity *user_services.IdentityService,
	chatRepo chatrepo.ChatRepository,
	messageRepo messagerepo.MessageRepository,
	emailRepo emailrepo.EmailRepository,
	logger Logger,
) (*TranscriptService, error) {
	if db == nil {
		return nil, transcript.NewValidationError("constructor", "database handle is required")
	}
	if identity == nil {
		return nil, transcript.NewValidationError("constructor", "identity service is required")
	}
	if chatRepo == nil {
		return nil, transcript.NewValidationError("constructor", "chat repository is required")
	}
	if messageRepo == nil {
		return nil, transcript.NewValidationError("constructor", "message repository is required")
	}
	if emailRepo == nil {
		return nil, transcript.NewValidationError("constructor", "email repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	config := transcript.DefaultConfig()
	if err := config.Validate(); err != nil {
		return nil, transcript.NewValidationError("config", err.Error())
	}

	return &TranscriptService{
		config:      config,
		db:          db,
		identity:    identity,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		emailRepo:   emailRepo,
		logger:      logger,
	}, nil
}

// SyncMessages applies the complete incoming message list for a chat. The
// list is authoritative: stored messages absent from it are deleted along
// with their linked emails. The returned result pairs every processed
// client identifier with its storage reference.
func (s *TranscriptService) SyncMessages(
	ctx context.Context,
	credential string,
	chatID string,
	incoming []domain.IncomingMessage,
) (*transcript.SyncResult, error) {
	if err := s.validateSyncInput(chatID, incoming); err != nil {
		return nil, err
	}

	userID, err := s.identity.ResolveOrCreateUser(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return nil, transcript.NewAuthenticationError("sync_messages")
		}
		return nil, transcript.NewStoreError("sync_messages", "could not resolve caller identity", err)
	}

	result := &transcript.SyncResult{Inserted: make([]transcript.SyncedMessage, 0, len(incoming))}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chats := s.chatRepo.WithTx(tx)
		messages := s.messageRepo.WithTx(tx)
		emails := s.emailRepo.WithTx(tx)
		now := time.Now()

		if err := s.upsertChat(ctx, chats, userID, chatID, incoming, now); err != nil {
			return err
		}

		stored, err := messages.FindByChatID(ctx, chatID)
		if err != nil {
			return transcript.NewStoreError("sync_messages", "could not load stored messages", err)
		}

		storedByMessageID := make(map[string]*domain.Message, len(stored))
		for i := range stored {
			storedByMessageID[stored[i].MessageID] = &stored[i]
		}
		seen := make(map[string]struct{}, len(incoming))

		for index, input := range incoming {
			messageID := input.ID
			if messageID == "" {
				messageID = fmt.Sprintf("%s-%d", chatID, index)
			}
			seen[messageID] = struct{}{}

			parts := input.Parts
			if parts == nil {
				parts = []domain.MessagePart{}
			}
			partsJSON, err := json.Marshal(parts)
			if err != nil {
				return transcript.NewValidationError("sync_messages", "message parts are not serializable")
			}

			if existing, ok := storedByMessageID[messageID]; ok {
				// Last occurrence wins when the incoming list repeats an
				// identifier: each iteration patches in place.
				if existing.OwnerUserID != userID {
					return transcript.NewUnauthorizedError(userID, chatID)
				}
				existing.Role = input.Role
				existing.Parts = partsJSON
				existing.UpdatedAt = now
				if err := messages.Update(ctx, existing); err != nil {
					return transcript.NewStoreError("sync_messages", "could not patch message", err)
				}
				result.Inserted = append(result.Inserted, transcript.SyncedMessage{
					ID:         messageID,
					StorageRef: existing.PublicID,
					Role:       input.Role,
					Parts:      parts,
				})
				continue
			}

			createdAt := transcript.CoerceTimestamp(input.CreatedAt, now.Add(time.Duration(index)*time.Millisecond))
			row := &domain.Message{
				PublicID:    uuid.NewString(),
				ChatID:      chatID,
				MessageID:   messageID,
				OwnerUserID: userID,
				Role:        input.Role,
				Parts:       partsJSON,
				CreatedAt:   createdAt,
				UpdatedAt:   now,
			}
			if _, err := messages.Create(ctx, row); err != nil {
				return transcript.NewStoreError("sync_messages", "could not insert message", err)
			}
			storedByMessageID[messageID] = row
			result.Inserted = append(result.Inserted, transcript.SyncedMessage{
				ID:         messageID,
				StorageRef: row.PublicID,
				Role:       input.Role,
				Parts:      parts,
			})
		}

		// Stored messages absent from the authoritative list are removed,
		// cascading to any linked emails first so no email outlives its
		// originating message.
		for i := range stored {
			old := &stored[i]
			if _, ok := seen[old.MessageID]; ok {
				continue
			}
			if old.OwnerUserID != userID {
				return transcript.NewUnauthorizedError(userID, chatID)
			}
			if _, err := emails.DeleteByAssistantMessage(ctx, old.PublicID, userID); err != nil {
				return transcript.NewStoreError("sync_messages", "could not cascade delete linked emails", err)
			}
			if err := messages.Delete(ctx, old.ID); err != nil {
				return transcript.NewStoreError("sync_messages", "could not delete message", err)
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.logger.Debug("transcript synced", "chat_id", chatID, "messages", len(incoming))
	return result, nil
}

// upsertChat creates the chat on first sync or touches its metadata. The
// title is set once from the first user message and only overwritten while
// it still holds the default placeholder.
func (s *TranscriptService) upsertChat(
	ctx context.Context,
	chats chatrepo.ChatRepository,
	userID uint,
	chatID string,
	incoming []domain.IncomingMessage,
	now time.Time,
) error {
	title := transcript.DeriveTitle(incoming, s.config.TitleMaxLength)

	existing, err := chats.FindByChatID(ctx, chatID)
	if err != nil {
		if !errors.Is(err, chatrepo.ErrChatNotFound) {
			return transcript.NewStoreError("sync_messages", "could not load chat", err)
		}
		_, err := chats.Create(ctx, &domain.Chat{
			ChatID:        chatID,
			OwnerUserID:   userID,
			Title:         title,
			CreatedAt:     now,
			UpdatedAt:     now,
			LastMessageAt: now,
		})
		if err != nil {
			return transcript.NewStoreError("sync_messages", "could not create chat", err)
		}
		return nil
	}

	if existing.OwnerUserID != userID {
		return transcript.NewUnauthorizedError(userID, chatID)
	}

	if existing.Title == domain.DefaultChatTitle {
		existing.Title = title
	}
	existing.UpdatedAt = now
	existing.LastMessageAt = now
	if err := chats.Update(ctx, existing); err != nil {
		return transcript.NewStoreError("sync_messages", "could not update chat", err)
	}
	return nil
}

// ListMessagesByChat returns the caller's messages for a chat in ascending
// creation order. Anonymous callers get an empty list, never an error.
func (s *TranscriptService) ListMessagesByChat(ctx context.Context, credential, chatID string) ([]transcript.MessageView, error) {
	if strings.TrimSpace(chatID) == "" {
		return nil, transcript.NewValidationError("list_messages", "chat id is required")
	}

	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return []transcript.MessageView{}, nil
		}
		return nil, transcript.NewStoreError("list_messages", "could not resolve caller identity", err)
	}
	if userID == 0 {
		return []transcript.MessageView{}, nil
	}

	rows, err := s.messageRepo.FindOwnedByChatID(ctx, chatID, userID)
	if err != nil {
		return nil, transcript.NewStoreError("list_messages", "could not load messages", err)
	}

	views := make([]transcript.MessageView, 0, len(rows))
	for _, row := range rows {
		var parts []domain.MessagePart
		if len(row.Parts) > 0 {
			if err := json.Unmarshal(row.Parts, &parts); err != nil {
				return nil, transcript.NewStoreError("list_messages", "stored message parts are corrupt", err)
			}
		}
		views = append(views, transcript.MessageView{
			ID:        row.MessageID,
			Role:      row.Role,
			Parts:     parts,
			CreatedAt: row.CreatedAt,
		})
	}

	return views, nil
}

// ListChats returns the caller's chats ordered by most recent activity.
// Anonymous callers get an empty list.
func (s *TranscriptService) ListChats(ctx context.Context, credential string) ([]domain.Chat, error) {
	userID, err := s.identity.ResolveIdentity(ctx, credential)
	if err != nil {
		if errors.Is(err, user_services.ErrAuthenticationRequired) {
			return []domain.Chat{}, nil
		}
		return nil, transcript.NewStoreError("list_chats", "could not resolve caller identity", err)
	}
	if userID == 0 {
		return []domain.Chat{}, nil
	}

	chats, err := s.chatRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, transcript.NewStoreError("list_chats", "could not load chats", err)
	}
	return chats, nil
}

func (s *TranscriptService) validateSyncInput(chatID string, incoming []domain.IncomingMessage) error {
	if strings.TrimSpace(chatID) == "" {
		return transcript.NewValidationError("sync_messages", "chat id is required")
	}
	if len(chatID) > s.config.MaxChatIDLength {
		return transcript.NewValidationError("sync_messages", "chat id too long")
	}
	if len(incoming) > s.config.MaxIncomingMessages {
		return transcript.NewValidationError("sync_messages", "too many messages in one sync call")
	}
	for _, input := range incoming {
		if len(input.ID) > s.config.MaxMessageIDLength {
			return transcript.NewValidationError("sync_messages", "message id too long")
		}
	}
	return nil
}
