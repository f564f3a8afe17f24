// File: internal/services/style/extractor_test.go
package style

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProfileColors(t *testing.T) {
	html := `<div style="color: #1A73E8; background: rgb(255, 255, 255)">
		<span style="color: #1a73e8">dup after lowercasing</span>
		<span style="border: 1px solid hsla(120, 50%, 50%, 0.5)">x</span>
	</div>`

	profile := ExtractProfile(html)

	assert.Equal(t, []string{"#1a73e8", "rgb(255, 255, 255)", "hsla(120, 50%, 50%, 0.5)"}, profile.Colors)
}

func TestExtractProfileColorCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, `<span style="color: #%06x">x</span>`, i+1)
	}

	profile := ExtractProfile(b.String())

	assert.Len(t, profile.Colors, 12)
	assert.Equal(t, "#000001", profile.Colors[0])
}

func TestExtractProfileFontsAndLayout(t *testing.T) {
	html := `<body style="font-family: Helvetica, Arial, sans-serif">
		<table style="max-width: 600px; padding: 24px 0">
			<td style="border-radius: 8px; margin: 0 auto">content</td>
		</table>
	</body>`

	profile := ExtractProfile(html)

	assert.Equal(t, []string{"helvetica, arial, sans-serif"}, profile.FontFamilies)
	assert.Equal(t, "600px", profile.MaxWidth)
	assert.Equal(t, []string{"8px"}, profile.RadiusValues)
	assert.Equal(t, []string{"24px 0", "0 auto"}, profile.SpacingValues)
}

func TestExtractProfileButtons(t *testing.T) {
	html := `<a href="#" style="background: #1a73e8; color: #FFFFFF; padding: 12px">Buy now</a>
		<button style="background-color: rgb(0, 0, 0)">Other</button>
		<div style="background: #eeeeee; color: #111111">not a button</div>`

	profile := ExtractProfile(html)

	assert.Equal(t, []string{"#1a73e8", "rgb(0, 0, 0)"}, profile.ButtonBackgrounds)
	assert.Equal(t, []string{"#ffffff"}, profile.ButtonTextColors[:1])
}

func TestExtractProfileSectionFlags(t *testing.T) {
	profile := ExtractProfile(`<p><a href="#">Unsubscribe</a></p>`)
	assert.False(t, profile.HasHeaderLikeSection)
	assert.True(t, profile.HasFooterLikeSection)

	profile = ExtractProfile(`<img src="logo.png" alt="Logo">`)
	assert.True(t, profile.HasHeaderLikeSection)
	assert.False(t, profile.HasFooterLikeSection)
}

func TestExtractProfileDeterministic(t *testing.T) {
	html := `<div style="color: #abc; font-family: Georgia; padding: 8px">hello</div>`

	first := ExtractProfile(html)
	second := ExtractProfile(html)

	assert.Equal(t, first, second)
}

func TestExtractProfileEmptyInput(t *testing.T) {
	profile := ExtractProfile("")

	assert.Empty(t, profile.Colors)
	assert.Empty(t, profile.FontFamilies)
	assert.Empty(t, profile.MaxWidth)
	assert.False(t, profile.HasHeaderLikeSection)
	assert.False(t, profile.HasFooterLikeSection)
}
