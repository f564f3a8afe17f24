// File: internal/services/style/extractor.go

// Package style derives a normalized StyleProfile from raw email markup.
// It is a deterministic, best-effort text scan: no parsing correctness is
// promised and no state is touched, so it is safe from any goroutine.
package style

import (
	"regexp"
	"strings"

	"github.com/avelar/draftmail/internal/domain"
)

// Caps keep profiles small enough to embed in prompts downstream.
const (
	maxColors        = 12
	maxFontFamilies  = 8
	maxRadiusValues  = 8
	maxSpacingValues = 10
	maxButtonValues  = 8
)

var (
	colorPattern    = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6,8})\b|rgba?\([^)]*\)|hsla?\([^)]*\)`)
	fontPattern     = regexp.MustCompile(`(?i)font-family\s*:\s*([^;"']+)`)
	maxWidthPattern = regexp.MustCompile(`(?i)max-width\s*:\s*([^;"']+)`)
	radiusPattern   = regexp.MustCompile(`(?i)border-radius\s*:\s*([^;"']+)`)
	spacingPattern  = regexp.MustCompile(`(?i)(?:padding|margin)\s*:\s*([^;"']+)`)

	// Inline style blocks on call-to-action elements only.
	buttonStylePattern = regexp.MustCompile(`(?i)<(?:a|button)[^>]*style="[^"]*"`)
	backgroundPattern  = regexp.MustCompile(`(?i)background(?:-color)?\s*:\s*([^;"']+)`)
	textColorPattern   = regexp.MustCompile(`(?i)color\s*:\s*([^;"']+)`)

	quoteReplacer = strings.NewReplacer(`"`, "", "'", "")
)

// ExtractProfile scans markup for color, typography, spacing and layout
// signals. Identical input always yields identical output: every list is
// trimmed, lower-cased, deduplicated in first-seen order and capped.
func ExtractProfile(htmlCode string) domain.StyleProfile {
	colors := uniqueNormalized(colorPattern.FindAllString(htmlCode, -1), maxColors)

	fontFamilies := uniqueNormalized(
		capturedValues(fontPattern, htmlCode, func(value string) string {
			return quoteReplacer.Replace(value)
		}),
		maxFontFamilies,
	)

	var maxWidth string
	if m := maxWidthPattern.FindStringSubmatch(htmlCode); m != nil {
		maxWidth = strings.TrimSpace(m[1])
	}

	radiusValues := uniqueNormalized(capturedValues(radiusPattern, htmlCode, nil), maxRadiusValues)
	spacingValues := uniqueNormalized(capturedValues(spacingPattern, htmlCode, nil), maxSpacingValues)

	buttonBlocks := buttonStylePattern.FindAllString(htmlCode, -1)
	buttonBackgrounds := uniqueNormalized(firstCaptures(backgroundPattern, buttonBlocks), maxButtonValues)
	buttonTextColors := uniqueNormalized(firstCaptures(textColorPattern, buttonBlocks), maxButtonValues)

	lowered := strings.ToLower(htmlCode)

	return domain.StyleProfile{
		Colors:               colors,
		FontFamilies:         fontFamilies,
		MaxWidth:             maxWidth,
		RadiusValues:         radiusValues,
		SpacingValues:        spacingValues,
		ButtonBackgrounds:    buttonBackgrounds,
		ButtonTextColors:     buttonTextColors,
		HasHeaderLikeSection: containsAny(lowered, "header", "logo", "hero"),
		HasFooterLikeSection: containsAny(lowered, "footer", "unsubscribe", "copyright"),
	}
}

// uniqueNormalized trims, lower-cases, drops empties, deduplicates by
// normalized form preserving first-seen order, then truncates to cap.
func uniqueNormalized(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
		if len(result) == limit {
			break
		}
	}
	return result
}

// capturedValues collects the first capture group of every match,
// optionally post-processing each value.
func capturedValues(pattern *regexp.Regexp, input string, transform func(string) string) []string {
	matches := pattern.FindAllStringSubmatch(input, -1)
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		value := m[1]
		if transform != nil {
			value = transform(value)
		}
		values = append(values, value)
	}
	return values
}

// firstCaptures extracts the first capture group of the first pattern match
// inside each block.
func firstCaptures(pattern *regexp.Regexp, blocks []string) []string {
	values := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if m := pattern.FindStringSubmatch(block); m != nil {
			values = append(values, m[1])
		}
	}
	return values
}

func containsAny(input string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(input, sub) {
			return true
		}
	}
	return false
}
