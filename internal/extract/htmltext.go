package extract

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// PlainText converts HTML markup to markdown text so that only visible
// content reaches the price scanner. Input that fails conversion or
// converts to nothing (already-plain text, garbage) passes through as is.
func PlainText(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}
	md, err := htmltomarkdown.ConvertString(raw)
	if err != nil || strings.TrimSpace(md) == "" {
		return raw
	}
	return md
}
