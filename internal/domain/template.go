// File: internal/domain/template.go
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Source kinds for a saved template.
const (
	TemplateSourceHTML = "html"
	TemplateSourceBoth = "both"
)

// StyleProfile is a normalized, best-effort summary of the visual signals
// found in a template's markup. List fields are trimmed, lower-cased,
// deduplicated in first-seen order and capped.
type StyleProfile struct {
	Colors               []string `json:"colors"`
	FontFamilies         []string `json:"fontFamilies"`
	MaxWidth             string   `json:"maxWidth,omitempty"`
	RadiusValues         []string `json:"radiusValues"`
	SpacingValues        []string `json:"spacingValues"`
	ButtonBackgrounds    []string `json:"buttonBackgrounds"`
	ButtonTextColors     []string `json:"buttonTextColors"`
	HasHeaderLikeSection bool     `json:"hasHeaderLikeSection"`
	HasFooterLikeSection bool     `json:"hasFooterLikeSection"`
}

// EmailTemplate is a user-curated style reference independent of any chat.
// It is created and deleted explicitly and never cascades.
type EmailTemplate struct {
	ID           uint           `json:"-" gorm:"primarykey"`
	PublicID     string         `json:"id" gorm:"uniqueIndex;size:36;not null"`
	OwnerUserID  uint           `json:"-" gorm:"index;not null"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	SourceKind   string         `json:"source_kind" gorm:"size:16"`
	HTMLCode     string         `json:"html_code" gorm:"type:text"`
	TSXCode      string         `json:"tsx_code" gorm:"type:text"`
	StyleProfile datatypes.JSON `json:"style_profile"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
