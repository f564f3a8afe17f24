// File: internal/services/transcript/title.go
package transcript

import (
	"strings"

	"github.com/avelar/draftmail/internal/domain"
)

// DeriveTitle scans the incoming list for the first message with role
// "user" and joins the text of its text parts. The result is trimmed and
// truncated to maxLength characters; when no usable text exists the default
// placeholder title is returned.
func DeriveTitle(messages []domain.IncomingMessage, maxLength int) string {
	var userMessage *domain.IncomingMessage
	for i := range messages {
		if messages[i].Role == "user" {
			userMessage = &messages[i]
			break
		}
	}
	if userMessage == nil {
		return domain.DefaultChatTitle
	}

	segments := make([]string, 0, len(userMessage.Parts))
	for _, part := range userMessage.Parts {
		if part.Type == domain.PartTypeText {
			segments = append(segments, part.Text)
		} else {
			segments = append(segments, "")
		}
	}

	text := strings.TrimSpace(strings.Join(segments, " "))
	if text == "" {
		return domain.DefaultChatTitle
	}

	if runes := []rune(text); len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return text
}
