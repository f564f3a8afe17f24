// File: internal/services/template/types.go
package template

import "github.com/avelar/draftmail/internal/domain"

// StyleReference is the slim view of a saved template handed to generation
// prompts: markup plus the derived style profile, without timestamps.
type StyleReference struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	HTMLCode     string              `json:"htmlCode"`
	StyleProfile domain.StyleProfile `json:"styleProfile"`
}
