package glob

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// node is one element of a parsed pattern. render receives the expression
// that follows the node so negation groups can look ahead past themselves.
type node interface {
	render(follow string) string
}

type literal string

func (l literal) render(string) string {
	return regexp2.Escape(string(l))
}

// fragment is an already rendered expression
type fragment string

func (f fragment) render(string) string {
	return string(f)
}

type group struct {
	kind  byte // '{' for braces, otherwise the extglob lead character
	alts  [][]node
	cross bool // alternatives may span directory separators
}

func (g group) render(follow string) string {
	rendered := make([]string, len(g.alts))
	for i, alt := range g.alts {
		rendered[i] = renderSeq(alt, follow)
	}
	body := strings.Join(rendered, "|")

	switch g.kind {
	case '?':
		return "(?:" + body + ")?"
	case '+':
		return "(?:" + body + ")+"
	case '*':
		return "(?:" + body + ")*"
	case '!':
		span := "[^/]"
		if g.cross {
			span = "."
		}
		return "(?:(?!(?:" + body + ")" + follow + ")" + span + "*?)"
	default:
		return "(?:" + body + ")"
	}
}

func renderSeq(nodes []node, after string) string {
	parts := make([]string, len(nodes))
	follow := after
	for i := len(nodes) - 1; i >= 0; i-- {
		parts[i] = nodes[i].render(follow)
		follow = parts[i] + follow
	}
	return strings.Join(parts, "")
}

// translate converts a pattern body (no leading negation) into an anchored
// regexp2 expression.
func translate(pattern string) (string, error) {
	p := &parser{src: pattern}
	nodes, term, err := p.parseSeq("")
	if err != nil {
		return "", err
	}
	if term != 0 {
		return "", fmt.Errorf("unexpected %q at offset %d", term, p.pos-1)
	}
	return "^" + renderSeq(nodes, "$") + "$", nil
}

type parser struct {
	src string
	pos int
}

// parseSeq reads nodes until one of the stop characters (returned as the
// terminator) or the end of input (terminator 0).
func (p *parser) parseSeq(stop string) ([]node, byte, error) {
	var nodes []node
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			nodes = append(nodes, literal(lit.String()))
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]

		if strings.IndexByte(stop, c) >= 0 {
			p.pos++
			flush()
			return nodes, c, nil
		}

		switch {
		case c == '\\':
			if p.pos+1 >= len(p.src) {
				return nil, 0, fmt.Errorf("trailing escape")
			}
			lit.WriteByte(p.src[p.pos+1])
			p.pos += 2

		case isExtglobLead(c) && p.pos+1 < len(p.src) && p.src[p.pos+1] == '(':
			flush()
			start := p.pos
			p.pos += 2
			g, err := p.parseGroup(c, "|)", ')')
			if err != nil {
				return nil, 0, err
			}
			src := p.src[start:p.pos]
			g.cross = strings.Contains(src, "/") || strings.Contains(src, "**")
			nodes = append(nodes, g)

		case c == '{':
			flush()
			p.pos++
			g, err := p.parseGroup('{', ",}", '}')
			if err != nil {
				return nil, 0, err
			}
			if len(g.alts) == 1 {
				nodes = append(nodes, literal("{"))
				nodes = append(nodes, g.alts[0]...)
				nodes = append(nodes, literal("}"))
			} else {
				nodes = append(nodes, g)
			}

		case c == '[':
			flush()
			class, err := p.parseClass()
			if err != nil {
				return nil, 0, err
			}
			nodes = append(nodes, fragment(class))

		case c == '*':
			flush()
			nodes = append(nodes, p.parseStar())

		case c == '?':
			flush()
			p.pos++
			nodes = append(nodes, fragment("[^/]"))

		default:
			lit.WriteByte(c)
			p.pos++
		}
	}

	flush()
	return nodes, 0, nil
}

func (p *parser) parseGroup(kind byte, stop string, closer byte) (group, error) {
	g := group{kind: kind}
	for {
		alt, term, err := p.parseSeq(stop)
		if err != nil {
			return g, err
		}
		if term == 0 {
			return g, fmt.Errorf("missing %q", closer)
		}
		g.alts = append(g.alts, alt)
		if term == closer {
			return g, nil
		}
	}
}

// parseStar handles `*` and `**`. A `**` spanning a whole segment matches
// any number of directories.
func (p *parser) parseStar() node {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] == '*' {
		p.pos++
	}
	if p.pos-start < 2 || !p.segmentStart(start) {
		return fragment("[^/]*")
	}
	switch {
	case p.pos == len(p.src):
		return fragment(".*")
	case p.src[p.pos] == '/':
		p.pos++
		return fragment("(?:.*/)?")
	case strings.IndexByte(",}|)", p.src[p.pos]) >= 0:
		return fragment(".*")
	default:
		return fragment("[^/]*")
	}
}

func (p *parser) segmentStart(at int) bool {
	if at == 0 {
		return true
	}
	return strings.IndexByte("/{,|(", p.src[at-1]) >= 0
}

func (p *parser) parseClass() (string, error) {
	p.pos++ // [
	var b strings.Builder
	b.WriteByte('[')
	if p.pos < len(p.src) && (p.src[p.pos] == '!' || p.src[p.pos] == '^') {
		b.WriteByte('^')
		p.pos++
	}
	first := true
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ']' && !first:
			p.pos++
			b.WriteByte(']')
			return b.String(), nil
		case c == '\\':
			if p.pos+1 >= len(p.src) {
				return "", fmt.Errorf("trailing escape")
			}
			b.WriteString(escapeClassChar(p.src[p.pos+1]))
			p.pos += 2
		case c == '-':
			b.WriteByte('-')
			p.pos++
		default:
			b.WriteString(escapeClassChar(c))
			p.pos++
		}
		first = false
	}
	return "", fmt.Errorf("missing ']'")
}

func escapeClassChar(c byte) string {
	switch c {
	case '\\', ']', '[', '^', '-':
		return `\` + string(c)
	default:
		return string(c)
	}
}
