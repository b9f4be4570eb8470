// Package plural parses and evaluates gettext Plural-Forms rules,
// the C-expression metadata catalogs carry to map a count onto a
// plural index (e.g. "nplurals=2; plural=(n != 1);").
package plural

import (
	"fmt"
	"strconv"
	"strings"
)

// Rule is a parsed Plural-Forms declaration.
type Rule struct {
	// NPlurals is the number of plural forms the catalog carries.
	NPlurals int

	expr node
	src  string
}

// Default returns the germanic two-form rule gettext assumes when a
// catalog omits Plural-Forms.
func Default() *Rule {
	r, err := Parse("nplurals=2; plural=(n != 1);")
	if err != nil {
		panic(err) // static rule, cannot fail
	}
	return r
}

// Parse parses a Plural-Forms declaration of the form
// "nplurals=N; plural=EXPR;".
func Parse(s string) (*Rule, error) {
	rule := &Rule{src: strings.TrimSpace(s)}

	rest := rule.src
	for rest != "" {
		part, tail, _ := strings.Cut(rest, ";")
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "nplurals"):
			_, val, ok := strings.Cut(part, "=")
			if !ok {
				return nil, fmt.Errorf("plural-forms: malformed nplurals in %q", s)
			}
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("plural-forms: invalid nplurals in %q", s)
			}
			rule.NPlurals = n
			rest = tail
		case strings.HasPrefix(part, "plural"):
			// The expression may itself not contain ';', so the cut
			// above is safe; everything after "plural=" is the
			// expression body.
			_, val, ok := strings.Cut(part, "=")
			if !ok {
				return nil, fmt.Errorf("plural-forms: malformed plural in %q", s)
			}
			expr, err := parseExpr(val)
			if err != nil {
				return nil, fmt.Errorf("plural-forms: %w", err)
			}
			rule.expr = expr
			rest = tail
		case part == "":
			rest = tail
		default:
			return nil, fmt.Errorf("plural-forms: unexpected clause %q", part)
		}
	}

	if rule.NPlurals == 0 {
		return nil, fmt.Errorf("plural-forms: missing nplurals in %q", s)
	}
	if rule.expr == nil {
		return nil, fmt.Errorf("plural-forms: missing plural expression in %q", s)
	}
	return rule, nil
}

// Index evaluates the rule for a count, clamped to [0, NPlurals).
func (r *Rule) Index(n uint32) int {
	v := r.expr.eval(int64(n))
	if v < 0 {
		return 0
	}
	if v >= int64(r.NPlurals) {
		return r.NPlurals - 1
	}
	return int(v)
}

// String returns the original declaration text.
func (r *Rule) String() string {
	return r.src
}

// Expression AST. C semantics: comparisons and logic yield 0 or 1,
// the ternary selects on nonzero.

type node interface {
	eval(n int64) int64
}

type numNode int64

func (v numNode) eval(int64) int64 { return int64(v) }

type varNode struct{}

func (varNode) eval(n int64) int64 { return n }

type unaryNode struct {
	op string
	x  node
}

func (u unaryNode) eval(n int64) int64 {
	if u.x.eval(n) == 0 {
		return 1
	}
	return 0
}

type binaryNode struct {
	op   string
	l, r node
}

func (b binaryNode) eval(n int64) int64 {
	l := b.l.eval(n)
	switch b.op {
	case "||":
		if l != 0 {
			return 1
		}
		return boolInt(b.r.eval(n) != 0)
	case "&&":
		if l == 0 {
			return 0
		}
		return boolInt(b.r.eval(n) != 0)
	}
	r := b.r.eval(n)
	switch b.op {
	case "==":
		return boolInt(l == r)
	case "!=":
		return boolInt(l != r)
	case "<":
		return boolInt(l < r)
	case "<=":
		return boolInt(l <= r)
	case ">":
		return boolInt(l > r)
	case ">=":
		return boolInt(l >= r)
	case "%":
		if r == 0 {
			return 0
		}
		return l % r
	}
	return 0
}

type ternaryNode struct {
	cond, then, els node
}

func (t ternaryNode) eval(n int64) int64 {
	if t.cond.eval(n) != 0 {
		return t.then.eval(n)
	}
	return t.els.eval(n)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Recursive-descent parser over a small token stream.

type exprParser struct {
	tokens []string
	pos    int
}

func parseExpr(s string) (node, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &exprParser{tokens: tokens}
	n, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q", p.tokens[p.pos])
	}
	return n, nil
}

func tokenize(s string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		case c == 'n':
			tokens = append(tokens, "n")
			i++
		case strings.ContainsRune("?:()%", rune(c)):
			tokens = append(tokens, string(c))
			i++
		case c == '|' || c == '&':
			if i+1 >= len(s) || s[i+1] != c {
				return nil, fmt.Errorf("unexpected %q", string(c))
			}
			tokens = append(tokens, s[i:i+2])
			i += 2
		case c == '=':
			if i+1 >= len(s) || s[i+1] != '=' {
				return nil, fmt.Errorf("unexpected %q", string(c))
			}
			tokens = append(tokens, "==")
			i += 2
		case c == '!' || c == '<' || c == '>':
			if i+1 < len(s) && s[i+1] == '=' {
				tokens = append(tokens, s[i:i+2])
				i += 2
			} else {
				tokens = append(tokens, string(c))
				i++
			}
		default:
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return tokens, nil
}

func (p *exprParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *exprParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *exprParser) expect(tok string) error {
	if p.peek() != tok {
		return fmt.Errorf("expected %q, got %q", tok, p.peek())
	}
	p.pos++
	return nil
}

func (p *exprParser) ternary() (node, error) {
	cond, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.peek() != "?" {
		return cond, nil
	}
	p.next()
	then, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return ternaryNode{cond: cond, then: then, els: els}, nil
}

func (p *exprParser) or() (node, error) {
	l, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek() == "||" {
		p.next()
		r, err := p.and()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: "||", l: l, r: r}
	}
	return l, nil
}

func (p *exprParser) and() (node, error) {
	l, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.peek() == "&&" {
		p.next()
		r, err := p.equality()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: "&&", l: l, r: r}
	}
	return l, nil
}

func (p *exprParser) equality() (node, error) {
	l, err := p.relational()
	if err != nil {
		return nil, err
	}
	for p.peek() == "==" || p.peek() == "!=" {
		op := p.next()
		r, err := p.relational()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: op, l: l, r: r}
	}
	return l, nil
}

func (p *exprParser) relational() (node, error) {
	l, err := p.modulo()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case "<", "<=", ">", ">=":
			op := p.next()
			r, err := p.modulo()
			if err != nil {
				return nil, err
			}
			l = binaryNode{op: op, l: l, r: r}
		default:
			return l, nil
		}
	}
}

func (p *exprParser) modulo() (node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek() == "%" {
		p.next()
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: "%", l: l, r: r}
	}
	return l, nil
}

func (p *exprParser) unary() (node, error) {
	if p.peek() == "!" {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: "!", x: x}, nil
	}
	return p.primary()
}

func (p *exprParser) primary() (node, error) {
	switch tok := p.peek(); {
	case tok == "n":
		p.next()
		return varNode{}, nil
	case tok == "(":
		p.next()
		inner, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case tok == "":
		return nil, fmt.Errorf("unexpected end of expression")
	default:
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected token %q", tok)
		}
		p.next()
		return numNode(v), nil
	}
}
