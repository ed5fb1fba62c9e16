// Package bibtex reads BibTeX databases into schema entries.
//
// Supported syntax: @type{key, field = value, ...} records with '{' or '('
// delimiters, brace- or quote-delimited values, bare numbers, @string macros
// (month abbreviations predefined), '#' concatenation, @preamble and @comment.
// Text between records is ignored, as are '%' line comments between tokens.
package bibtex

import (
	"fmt"
	"os"
	"strings"

	"publist/src/internal/names"
	"publist/src/internal/schema"
	"publist/src/internal/stringsx"
)

// Bibliography is the parsed content of one file. Entries keep file order.
type Bibliography struct {
	Entries  []schema.Entry
	Preamble []string
}

// SyntaxError reports malformed input at a 1-based line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

// DuplicateKeyError reports an entry key already used earlier in the same file.
// Keys compare case-insensitively.
type DuplicateKeyError struct {
	Key  string
	Line int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("line %d: repeated bibliography entry: %s", e.Line, e.Key)
}

// UndefinedMacroError reports a bare word value that names no @string macro.
type UndefinedMacroError struct {
	Name string
	Line int
}

func (e *UndefinedMacroError) Error() string {
	return fmt.Sprintf("line %d: undefined string: %s", e.Line, e.Name)
}

var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Bibliography, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(b))
}

// Parse parses a whole BibTeX database.
func Parse(src string) (*Bibliography, error) {
	p := &parser{s: src, n: len(src), macros: map[string]string{}}
	for k, v := range monthMacros {
		p.macros[k] = v
	}
	return p.parse()
}

type parser struct {
	s      string
	i      int
	n      int
	macros map[string]string
}

func (p *parser) line() int { return 1 + strings.Count(p.s[:min(p.i, p.n)], "\n") }

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line(), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipWS() {
	for p.i < p.n {
		if p.s[p.i] == '%' {
			for p.i < p.n && p.s[p.i] != '\n' {
				p.i++
			}
			continue
		}
		if strings.IndexByte(" \t\r\n", p.s[p.i]) >= 0 {
			p.i++
		} else {
			break
		}
	}
}

func (p *parser) readIdent() string {
	start := p.i
	for p.i < p.n && isIdentByte(p.s[p.i]) {
		p.i++
	}
	return p.s[start:p.i]
}

func isIdentByte(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '_' || c == '-'
}

// isNameByte accepts the characters BibTeX allows in field and macro names.
func isNameByte(c byte) bool {
	if c <= ' ' {
		return false
	}
	return strings.IndexByte("{}(),=\"#%", c) < 0
}

func (p *parser) readName() string {
	start := p.i
	for p.i < p.n && isNameByte(p.s[p.i]) {
		p.i++
	}
	return p.s[start:p.i]
}

func (p *parser) parse() (*Bibliography, error) {
	bib := &Bibliography{}
	seen := map[string]bool{}
	for {
		// anything before '@' is commentary
		for p.i < p.n && p.s[p.i] != '@' {
			p.i++
		}
		if p.i >= p.n {
			return bib, nil
		}
		p.i++
		p.skipWS()
		typ := strings.ToLower(p.readIdent())
		if typ == "" {
			return nil, p.errorf("expected entry type after '@'")
		}
		p.skipWS()
		if p.i >= p.n || (p.s[p.i] != '{' && p.s[p.i] != '(') {
			return nil, p.errorf("expected '{' or '(' after @%s", typ)
		}
		closer := byte('}')
		if p.s[p.i] == '(' {
			closer = ')'
		}
		p.i++
		switch typ {
		case "comment":
			if err := p.skipComment(closer); err != nil {
				return nil, err
			}
		case "preamble":
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			if err := p.expectClose(closer); err != nil {
				return nil, err
			}
			bib.Preamble = append(bib.Preamble, v)
		case "string":
			if err := p.macro(closer); err != nil {
				return nil, err
			}
		default:
			line := p.line()
			e, err := p.entry(typ, closer)
			if err != nil {
				return nil, err
			}
			k := strings.ToLower(e.Key)
			if seen[k] {
				return nil, &DuplicateKeyError{Key: e.Key, Line: line}
			}
			seen[k] = true
			bib.Entries = append(bib.Entries, e)
		}
	}
}

func (p *parser) skipComment(closer byte) error {
	open := byte('{')
	if closer == ')' {
		open = '('
	}
	depth := 0
	for p.i < p.n {
		c := p.s[p.i]
		p.i++
		switch c {
		case open:
			depth++
		case closer:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
	return p.errorf("unexpected end of file in @comment")
}

func (p *parser) expectClose(closer byte) error {
	p.skipWS()
	if p.i >= p.n || p.s[p.i] != closer {
		return p.errorf("expected '%c'", closer)
	}
	p.i++
	return nil
}

func (p *parser) macro(closer byte) error {
	p.skipWS()
	name := strings.ToLower(p.readName())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipWS()
	if p.i >= p.n || p.s[p.i] != '=' {
		return p.errorf("expected '=' after macro name %q", name)
	}
	p.i++
	v, err := p.value()
	if err != nil {
		return err
	}
	p.macros[name] = v
	return p.expectClose(closer)
}

func (p *parser) entry(typ string, closer byte) (schema.Entry, error) {
	e := schema.Entry{Type: typ}
	p.skipWS()
	start := p.i
	for p.i < p.n && p.s[p.i] != ',' && p.s[p.i] != closer && strings.IndexByte(" \t\r\n", p.s[p.i]) < 0 {
		p.i++
	}
	e.Key = p.s[start:p.i]
	if e.Key == "" {
		return e, p.errorf("missing key in @%s entry", typ)
	}
	p.skipWS()
	if p.i >= p.n {
		return e, p.errorf("unexpected end of file in entry %q", e.Key)
	}
	if p.s[p.i] == closer {
		p.i++
		return e, nil
	}
	if p.s[p.i] != ',' {
		return e, p.errorf("expected ',' after key %q", e.Key)
	}
	p.i++
	for {
		p.skipWS()
		if p.i >= p.n {
			return e, p.errorf("unexpected end of file in entry %q", e.Key)
		}
		if p.s[p.i] == closer {
			p.i++
			return e, nil
		}
		name := strings.ToLower(p.readName())
		if name == "" {
			return e, p.errorf("expected field name in entry %q, got %q", e.Key, p.s[p.i])
		}
		p.skipWS()
		if p.i >= p.n || p.s[p.i] != '=' {
			return e, p.errorf("expected '=' after field name %q", name)
		}
		p.i++
		v, err := p.value()
		if err != nil {
			return e, err
		}
		switch name {
		case "author":
			e.Authors = names.ParseList(v)
		case "editor":
			e.Editors = names.ParseList(v)
		default:
			e.Fields.Set(name, v)
		}
		p.skipWS()
		if p.i < p.n && p.s[p.i] == ',' {
			p.i++
			continue
		}
		if p.i < p.n && p.s[p.i] == closer {
			p.i++
			return e, nil
		}
		return e, p.errorf("expected ',' or '%c' after field %q", closer, name)
	}
}

// value reads one field value, joining '#'-concatenated parts. Inner braces
// are kept verbatim; runs of whitespace collapse to one space.
func (p *parser) value() (string, error) {
	var b strings.Builder
	for {
		p.skipWS()
		if p.i >= p.n {
			return "", p.errorf("unexpected end of file in field value")
		}
		c := p.s[p.i]
		switch {
		case c == '{':
			s, err := p.braced()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case c == '"':
			s, err := p.quoted()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case '0' <= c && c <= '9':
			start := p.i
			for p.i < p.n && '0' <= p.s[p.i] && p.s[p.i] <= '9' {
				p.i++
			}
			b.WriteString(p.s[start:p.i])
		case isNameByte(c):
			line := p.line()
			name := p.readName()
			v, ok := p.macros[strings.ToLower(name)]
			if !ok {
				return "", &UndefinedMacroError{Name: name, Line: line}
			}
			b.WriteString(v)
		default:
			return "", p.errorf("unexpected %q in field value", c)
		}
		p.skipWS()
		if p.i < p.n && p.s[p.i] == '#' {
			p.i++
			continue
		}
		return stringsx.CollapseSpace(b.String()), nil
	}
}

// braced reads a {...} group and returns its content without the outer braces.
// Braces are counted literally; a backslash does not escape them.
func (p *parser) braced() (string, error) {
	line := p.line()
	depth := 0
	p.i++
	start := p.i
	for p.i < p.n {
		switch p.s[p.i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				v := p.s[start:p.i]
				p.i++
				return v, nil
			}
			depth--
		}
		p.i++
	}
	return "", &SyntaxError{Line: line, Msg: "unbalanced braces in field value"}
}

// quoted reads a "..." value; quotes inside braces do not terminate it.
// As in braced, backslashes are not escapes.
func (p *parser) quoted() (string, error) {
	line := p.line()
	depth := 0
	p.i++
	start := p.i
	for p.i < p.n {
		switch p.s[p.i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '"':
			if depth == 0 {
				v := p.s[start:p.i]
				p.i++
				return v, nil
			}
		}
		p.i++
	}
	return "", &SyntaxError{Line: line, Msg: "unterminated quoted field value"}
}
