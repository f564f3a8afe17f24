// File: internal/services/transcript/config.go
package transcript

import "fmt"

type Config struct {
	// Boundary limits checked before any store access
	MaxIncomingMessages int // Maximum messages accepted per sync call
	MaxChatIDLength     int
	MaxMessageIDLength  int

	// Title derivation
	TitleMaxLength int // Derived titles are truncated to this many characters
}

func (c *Config) Validate() error {
	if c.MaxIncomingMessages <= 0 {
		return fmt.Errorf("max_incoming_messages must be positive")
	}
	if c.MaxChatIDLength <= 0 {
		return fmt.Errorf("max_chat_id_length must be positive")
	}
	if c.MaxMessageIDLength <= 0 {
		return fmt.Errorf("max_message_id_length must be positive")
	}
	if c.TitleMaxLength <= 0 {
		return fmt.Errorf("title_max_length must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		MaxIncomingMessages: 1000,
		MaxChatIDLength:     128,
		MaxMessageIDLength:  191,
		TitleMaxLength:      80,
	}
}
