// File: internal/services/transcript/title_test.go
package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelar/draftmail/internal/domain"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		messages []domain.IncomingMessage
		want     string
	}{
		{
			name:     "empty list",
			messages: nil,
			want:     domain.DefaultChatTitle,
		},
		{
			name: "no user message",
			messages: []domain.IncomingMessage{
				{Role: "assistant", Parts: []domain.MessagePart{domain.NewTextPart("Hello!")}},
			},
			want: domain.DefaultChatTitle,
		},
		{
			name: "first user message wins",
			messages: []domain.IncomingMessage{
				{Role: "assistant", Parts: []domain.MessagePart{domain.NewTextPart("Welcome")}},
				{Role: "user", Parts: []domain.MessagePart{domain.NewTextPart("Make a launch email")}},
				{Role: "user", Parts: []domain.MessagePart{domain.NewTextPart("Second request")}},
			},
			want: "Make a launch email",
		},
		{
			name: "text parts joined with spaces",
			messages: []domain.IncomingMessage{
				{Role: "user", Parts: []domain.MessagePart{
					domain.NewTextPart("Make a"),
					domain.NewTextPart("launch email"),
				}},
			},
			want: "Make a launch email",
		},
		{
			name: "non-text parts contribute nothing",
			messages: []domain.IncomingMessage{
				{Role: "user", Parts: []domain.MessagePart{
					{Type: domain.PartTypeToolInvocation},
					domain.NewTextPart("Make a launch email"),
				}},
			},
			want: "Make a launch email",
		},
		{
			name: "whitespace only falls back",
			messages: []domain.IncomingMessage{
				{Role: "user", Parts: []domain.MessagePart{domain.NewTextPart("   ")}},
			},
			want: domain.DefaultChatTitle,
		},
		{
			name: "user message without parts falls back",
			messages: []domain.IncomingMessage{
				{Role: "user"},
			},
			want: domain.DefaultChatTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.messages, DefaultConfig().TitleMaxLength))
		})
	}
}

func TestDeriveTitleTruncation(t *testing.T) {
	long := strings.Repeat("a", 120)
	messages := []domain.IncomingMessage{
		{Role: "user", Parts: []domain.MessagePart{domain.NewTextPart(long)}},
	}

	title := DeriveTitle(messages, 80)

	assert.Equal(t, strings.Repeat("a", 80), title)
}

func TestDeriveTitleTruncationMultibyte(t *testing.T) {
	long := strings.Repeat("é", 120)
	messages := []domain.IncomingMessage{
		{Role: "user", Parts: []domain.MessagePart{domain.NewTextPart(long)}},
	}

	title := DeriveTitle(messages, 80)

	assert.Equal(t, 80, len([]rune(title)))
	assert.Equal(t, strings.Repeat("é", 80), title)
}
