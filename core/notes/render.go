package notes

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// The converter configuration never changes and goldmark.Markdown is safe to
// share, so it is initialized once.
var (
	markdownOnce     sync.Once
	markdownInstance goldmark.Markdown
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownInstance
}

// RenderHTML converts a note's markdown content to HTML with GitHub-flavored
// markdown extensions (tables, strikethrough, task lists, autolinks).
func RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
