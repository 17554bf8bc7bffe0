package catalog

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
	bodyPolicy   *bluemonday.Policy
)

func markdownRenderer() (goldmark.Markdown, *bluemonday.Policy) {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Linkify))
		bodyPolicy = bluemonday.UGCPolicy()
	})
	return markdown, bodyPolicy
}

// renderMarkdown converts a product body to sanitised HTML.
func renderMarkdown(src string) (template.HTML, error) {
	md, policy := markdownRenderer()
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}
