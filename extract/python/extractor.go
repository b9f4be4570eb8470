// Package python extracts translatable docstrings from Python
// sources using tree-sitter. Each docstring paragraph becomes one
// template message whose reference is the fully-qualified symbol
// name plus the paragraph's position, the provenance form used by
// documentation-generation pipelines.
package python

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/c360studio/docloc/catalog"
	"github.com/c360studio/docloc/extract"
)

func init() {
	extract.DefaultRegistry.Register("python", []string{".py"},
		func(sourceRoot string) extract.Extractor {
			return NewExtractor(sourceRoot)
		})
}

// Extractor pulls docstrings out of Python files.
type Extractor struct {
	sourceRoot string
	parser     *sitter.Parser
}

// NewExtractor creates a Python docstring extractor rooted at
// sourceRoot.
func NewExtractor(sourceRoot string) *Extractor {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Extractor{
		sourceRoot: sourceRoot,
		parser:     p,
	}
}

// ExtractFile parses a Python file and returns one message per
// docstring paragraph.
func (e *Extractor) ExtractFile(ctx context.Context, path string) ([]*catalog.Message, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	relPath, err := filepath.Rel(e.sourceRoot, path)
	if err != nil {
		relPath = path
	}
	module := moduleName(relPath)

	tree, err := e.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	var messages []*catalog.Message

	if doc := moduleDocstring(root, content); doc != "" {
		messages = append(messages, docstringMessages(module, doc)...)
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		messages = append(messages, e.extractNode(root.NamedChild(i), content, module)...)
	}
	return messages, nil
}

// extractNode walks definitions, building dotted qualified names as
// it descends.
func (e *Extractor) extractNode(node *sitter.Node, content []byte, qualifier string) []*catalog.Message {
	switch node.Type() {
	case "class_definition", "function_definition":
		return e.extractDefinition(node, content, qualifier)
	case "decorated_definition":
		if def := definitionInDecorated(node); def != nil {
			return e.extractDefinition(def, content, qualifier)
		}
	}
	return nil
}

func (e *Extractor) extractDefinition(node *sitter.Node, content []byte, qualifier string) []*catalog.Message {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := string(content[nameNode.StartByte():nameNode.EndByte()])
	qualified := qualifier + "." + name

	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var messages []*catalog.Message
	if doc := bodyDocstring(body, content); doc != "" {
		messages = append(messages, docstringMessages(qualified, doc)...)
	}

	// Methods and nested definitions.
	if node.Type() == "class_definition" {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			messages = append(messages, e.extractNode(body.NamedChild(i), content, qualified)...)
		}
	}
	return messages
}

// docstringMessages splits a docstring into paragraphs; paragraph N
// of symbol S is referenced as "S:N".
func docstringMessages(symbol, doc string) []*catalog.Message {
	var messages []*catalog.Message
	for i, para := range paragraphs(doc) {
		messages = append(messages, &catalog.Message{
			ID:         para,
			Str:        []string{""},
			References: []catalog.Reference{{Path: symbol, Line: i + 1}},
		})
	}
	return messages
}

// paragraphs splits a dedented docstring on blank lines, joining the
// lines of each paragraph with single spaces.
func paragraphs(doc string) []string {
	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(dedent(doc), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}

// dedent strips the common leading whitespace of continuation lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return s
	}
	for i, line := range lines[1:] {
		if len(line) >= margin {
			lines[i+1] = line[margin:]
		}
	}
	return strings.Join(lines, "\n")
}

// moduleName derives the dotted module name from the file path.
func moduleName(relPath string) string {
	mod := strings.TrimSuffix(relPath, ".py")
	mod = strings.ReplaceAll(mod, string(filepath.Separator), ".")
	return strings.TrimSuffix(mod, ".__init__")
}

// moduleDocstring extracts the module-level docstring if present.
func moduleDocstring(node *sitter.Node, content []byte) string {
	return firstStringExpr(node, content)
}

// bodyDocstring extracts the docstring of a class or function body.
func bodyDocstring(body *sitter.Node, content []byte) string {
	return firstStringExpr(body, content)
}

func firstStringExpr(node *sitter.Node, content []byte) string {
	if node.NamedChildCount() == 0 {
		return ""
	}
	first := node.NamedChild(0)
	if first.Type() == "expression_statement" && first.NamedChildCount() > 0 {
		expr := first.NamedChild(0)
		if expr.Type() == "string" {
			return stringContent(expr, content)
		}
	}
	return ""
}

// stringContent strips quoting from a Python string literal.
func stringContent(node *sitter.Node, content []byte) string {
	raw := string(content[node.StartByte():node.EndByte()])
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			raw = strings.TrimPrefix(raw, q)
			raw = strings.TrimSuffix(raw, q)
			break
		}
	}
	return strings.TrimSpace(raw)
}

// definitionInDecorated finds the wrapped definition node.
func definitionInDecorated(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "class_definition" || child.Type() == "function_definition" {
			return child
		}
	}
	return nil
}
