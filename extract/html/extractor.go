// Package html extracts translatable strings from rendered
// documentation pages. Readability isolates the main content, which
// is normalized to markdown; each block-level segment becomes one
// template message referenced by file path and block position.
package html

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	xhtml "golang.org/x/net/html"

	"github.com/c360studio/docloc/catalog"
	"github.com/c360studio/docloc/extract"
)

func init() {
	extract.DefaultRegistry.Register("html", []string{".html", ".htm"},
		func(sourceRoot string) extract.Extractor {
			return NewExtractor(sourceRoot)
		})
}

// Extractor pulls translatable blocks out of HTML documents.
type Extractor struct {
	sourceRoot string
	converter  *md.Converter
}

// NewExtractor creates an HTML extractor rooted at sourceRoot.
func NewExtractor(sourceRoot string) *Extractor {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Extractor{
		sourceRoot: sourceRoot,
		converter:  converter,
	}
}

// ExtractFile reads an HTML document and returns one message per
// content block.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ([]*catalog.Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	relPath, err := filepath.Rel(e.sourceRoot, path)
	if err != nil {
		relPath = path
	}

	title := extractTitle(content)

	body := mainContent(content, path)
	markdown, err := e.converter.ConvertString(body)
	if err != nil {
		return nil, fmt.Errorf("convert to markdown: %w", err)
	}

	var messages []*catalog.Message
	for i, block := range blocks(markdown) {
		m := &catalog.Message{
			ID:         block,
			Str:        []string{""},
			References: []catalog.Reference{{Path: relPath, Line: i + 1}},
		}
		if title != "" {
			m.ExtractedComments = []string{title}
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// mainContent isolates the readable content area of a page, falling
// back to the raw document when readability finds nothing.
func mainContent(content []byte, path string) string {
	pageURL := &url.URL{Scheme: "file", Path: path}
	article, err := readability.FromReader(bytes.NewReader(content), pageURL)
	if err != nil || article.Content == "" {
		return string(content)
	}
	return article.Content
}

// extractTitle pulls the document title for extracted comments.
func extractTitle(content []byte) string {
	doc, err := xhtml.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// blocks splits markdown into translatable segments: one per
// blank-line-separated block, code fences excluded.
func blocks(markdown string) []string {
	var out []string
	var cur []string
	inFence := false
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			flush()
			continue
		}
		if inFence {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		cur = append(cur, trimmed)
	}
	flush()
	return out
}
