// File: internal/services/testhelpers_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avelar/draftmail/internal/domain"
	chatrepo "github.com/avelar/draftmail/internal/repository/chat"
	emailrepo "github.com/avelar/draftmail/internal/repository/email"
	messagerepo "github.com/avelar/draftmail/internal/repository/message"
	templaterepo "github.com/avelar/draftmail/internal/repository/template"
	userrepo "github.com/avelar/draftmail/internal/repository/user"
	"github.com/avelar/draftmail/internal/services/user_services"
)

// newTestDB opens an in-memory database pinned to a single connection so
// every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.Message{},
		&domain.Email{},
		&domain.EmailTemplate{},
	))
	return db
}

type testEnv struct {
	db           *gorm.DB
	identity     *user_services.IdentityService
	chatRepo     chatrepo.ChatRepository
	messageRepo  messagerepo.MessageRepository
	emailRepo    emailrepo.EmailRepository
	templateRepo templaterepo.TemplateRepository

	transcripts *TranscriptService
	emails      *EmailService
	templates   *TemplateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	logger := &NoOpLogger{}

	env := &testEnv{
		db:           db,
		identity:     user_services.NewIdentityService(userrepo.NewUserRepository(db), &NoOpLogger{}),
		chatRepo:     chatrepo.NewChatRepository(db),
		messageRepo:  messagerepo.NewMessageRepository(db),
		emailRepo:    emailrepo.NewEmailRepository(db),
		templateRepo: templaterepo.NewTemplateRepository(db),
	}

	var err error
	env.transcripts, err = NewTranscriptService(db, env.identity, env.chatRepo, env.messageRepo, env.emailRepo, logger)
	require.NoError(t, err)

	env.emails, err = NewEmailService(env.identity, env.emailRepo, logger)
	require.NoError(t, err)

	env.templates, err = NewTemplateService(env.identity, env.templateRepo, logger)
	require.NoError(t, err)

	return env
}
