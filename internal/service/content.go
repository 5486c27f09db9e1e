package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// WithUnsafe lets authored HTML through the renderer; bluemonday is
	// the security boundary.
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

const wordsPerMinute = 200

// RenderContent produces publishable HTML: markdown sources are rendered
// first, then everything passes through the UGC sanitizer.
func RenderContent(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(trimmed), &buf); err != nil {
		return sanitizer.Sanitize(trimmed)
	}
	return sanitizer.Sanitize(buf.String())
}

// PlainText strips all markup, leaving the readable words only.
func PlainText(content string) string {
	return strings.TrimSpace(stripper.Sanitize(content))
}

// EstimateReadingTime derives a "N min read" label from the word count of
// the tag-stripped content at 200 words per minute, floored at one minute.
func EstimateReadingTime(content string) string {
	words := len(strings.Fields(PlainText(content)))
	if words == 0 {
		return ""
	}

	minutes := words / wordsPerMinute
	if words%wordsPerMinute != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
