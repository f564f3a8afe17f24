// File: internal/services/transcript_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/draftmail/internal/domain"
	"github.com/avelar/draftmail/internal/services/transcript"
)

func userText(id, text string) domain.IncomingMessage {
	return domain.IncomingMessage{
		ID:    id,
		Role:  "user",
		Parts: []domain.MessagePart{domain.NewTextPart(text)},
	}
}

func assistantText(id, text string) domain.IncomingMessage {
	return domain.IncomingMessage{
		ID:    id,
		Role:  "assistant",
		Parts: []domain.MessagePart{domain.NewTextPart(text)},
	}
}

func TestSyncMessagesCreatesChatAndMessages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "Make a launch email"),
		assistantText("m2", "Here you go"),
	})
	require.NoError(t, err)
	require.Len(t, result.Inserted, 2)
	assert.Equal(t, "m1", result.Inserted[0].ID)
	assert.NotEmpty(t, result.Inserted[0].StorageRef)
	assert.NotEqual(t, result.Inserted[0].StorageRef, result.Inserted[1].StorageRef)

	chat, err := env.chatRepo.FindByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "Make a launch email", chat.Title)

	stored, err := env.messageRepo.FindByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSyncMessagesIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	incoming := []domain.IncomingMessage{
		userText("m1", "Make a launch email"),
		assistantText("m2", "Here you go"),
	}

	first, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", incoming)
	require.NoError(t, err)
	second, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", incoming)
	require.NoError(t, err)

	// Storage references stay stable across repeated syncs of the same list.
	require.Len(t, second.Inserted, 2)
	assert.Equal(t, first.Inserted[0].StorageRef, second.Inserted[0].StorageRef)
	assert.Equal(t, first.Inserted[1].StorageRef, second.Inserted[1].StorageRef)

	count, err := env.messageRepo.CountByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestSyncMessagesPatchesChangedContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "Draft one"),
	})
	require.NoError(t, err)

	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "Draft two"),
	})
	require.NoError(t, err)

	views, err := env.transcripts.ListMessagesByChat(ctx, "cred-a", "chat-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Parts, 1)
	assert.Equal(t, "Draft two", views[0].Parts[0].Text)
}

func TestSyncMessagesDeletesAbsentAndCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "Make a launch email"),
		assistantText("m2", "Here you go"),
	})
	require.NoError(t, err)
	assistantRef := result.Inserted[1].StorageRef

	emailID, err := env.emails.CreateOrUpdateLinked(ctx, "cred-a", "chat-1", assistantRef,
		"Launch", "launch email", "<Button/>", "<button>Go</button>")
	require.NoError(t, err)
	require.NotEmpty(t, emailID)

	// Resync without the assistant message; it and its email must go.
	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "Make a launch email"),
	})
	require.NoError(t, err)

	count, err := env.messageRepo.CountByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	emails, err := env.emails.ListEmails(ctx, "cred-a")
	require.NoError(t, err)
	assert.Empty(t, emails)
}

func TestSyncMessagesEmptyListClearsChat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "Make a launch email"),
	})
	require.NoError(t, err)

	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", nil)
	require.NoError(t, err)

	count, err := env.messageRepo.CountByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// The chat record itself survives an empty sync.
	_, err = env.chatRepo.FindByChatID(ctx, "chat-1")
	assert.NoError(t, err)
}

func TestSyncMessagesSynthesizesIdentifiers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-9", []domain.IncomingMessage{
		{Role: "user", Parts: []domain.MessagePart{domain.NewTextPart("hi")}},
		{Role: "assistant", Parts: []domain.MessagePart{domain.NewTextPart("hello")}},
	})
	require.NoError(t, err)
	require.Len(t, result.Inserted, 2)
	assert.Equal(t, "chat-9-0", result.Inserted[0].ID)
	assert.Equal(t, "chat-9-1", result.Inserted[1].ID)
}

func TestSyncMessagesDuplicateIdentifierLastWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "first occurrence"),
		userText("m1", "second occurrence"),
	})
	require.NoError(t, err)

	count, err := env.messageRepo.CountByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	views, err := env.transcripts.ListMessagesByChat(ctx, "cred-a", "chat-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "second occurrence", views[0].Parts[0].Text)
}

func TestSyncTitleSetOnceAndTruncated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	long := strings.Repeat("x", 120)

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", long),
	})
	require.NoError(t, err)

	chat, err := env.chatRepo.FindByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 80), chat.Title)

	// A later sync with different text leaves the derived title alone.
	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "totally different"),
	})
	require.NoError(t, err)

	chat, err = env.chatRepo.FindByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 80), chat.Title)
}

func TestSyncTitleDefaultOverwritten(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Assistant-only sync leaves the placeholder title.
	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		assistantText("m1", "Welcome"),
	})
	require.NoError(t, err)

	chat, err := env.chatRepo.FindByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChatTitle, chat.Title)

	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		assistantText("m1", "Welcome"),
		userText("m2", "Make a launch email"),
	})
	require.NoError(t, err)

	chat, err = env.chatRepo.FindByChatID(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "Make a launch email", chat.Title)
}

func TestSyncMessagesForeignChatRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "mine"),
	})
	require.NoError(t, err)

	_, err = env.transcripts.SyncMessages(ctx, "cred-b", "chat-1", []domain.IncomingMessage{
		userText("m1", "takeover"),
	})
	require.Error(t, err)

	var tErr *transcript.TranscriptError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, transcript.ErrTypeUnauthorized, tErr.Type)

	// Nothing changed for the owner.
	views, err := env.transcripts.ListMessagesByChat(ctx, "cred-a", "chat-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "mine", views[0].Parts[0].Text)
}

func TestSyncMessagesAnonymousRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transcripts.SyncMessages(context.Background(), "", "chat-1", []domain.IncomingMessage{
		userText("m1", "hi"),
	})
	require.Error(t, err)

	var tErr *transcript.TranscriptError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, transcript.ErrTypeAuthentication, tErr.Type)
}

func TestSyncMessagesValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "  ", nil)
	var tErr *transcript.TranscriptError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, transcript.ErrTypeValidation, tErr.Type)

	tooMany := make([]domain.IncomingMessage, 1001)
	for i := range tooMany {
		tooMany[i] = userText(fmt.Sprintf("m%d", i), "x")
	}
	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", tooMany)
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, transcript.ErrTypeValidation, tErr.Type)
}

func TestSyncMessagesPreservesUnknownPartShapes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	raw := `{"id":"m1","role":"assistant","parts":[{"type":"tool-invocation","toolInvocation":{"toolName":"generateEmail","state":"result"}}]}`
	var incoming domain.IncomingMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &incoming))

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{incoming})
	require.NoError(t, err)

	views, err := env.transcripts.ListMessagesByChat(ctx, "cred-a", "chat-1")
	require.NoError(t, err)
	require.Len(t, views, 1)

	out, err := json.Marshal(views[0].Parts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"tool-invocation","toolInvocation":{"toolName":"generateEmail","state":"result"}}]`, string(out))
}

func TestListMessagesAnonymousEmpty(t *testing.T) {
	env := newTestEnv(t)

	views, err := env.transcripts.ListMessagesByChat(context.Background(), "", "chat-1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListMessagesForeignChatEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{
		userText("m1", "mine"),
	})
	require.NoError(t, err)

	views, err := env.transcripts.ListMessagesByChat(ctx, "cred-b", "chat-1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListChatsOrderedByActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{userText("m1", "one")})
	require.NoError(t, err)
	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-2", []domain.IncomingMessage{userText("m1", "two")})
	require.NoError(t, err)
	// Touch chat-1 again so it becomes the most recent.
	_, err = env.transcripts.SyncMessages(ctx, "cred-a", "chat-1", []domain.IncomingMessage{userText("m1", "one"), assistantText("m2", "reply")})
	require.NoError(t, err)

	chats, err := env.transcripts.ListChats(ctx, "cred-a")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "chat-1", chats[0].ChatID)
	assert.Equal(t, "chat-2", chats[1].ChatID)
}
