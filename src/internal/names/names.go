package names

import (
	"strings"
	"unicode"
)

// Person is one parsed BibTeX name. Each part holds whitespace-separated tokens
// exactly as written, braces included.
type Person struct {
	First   []string
	Middle  []string
	Prelast []string // the "von" part
	Last    []string
	Lineage []string // the "Jr" part
}

// Display returns "<first token of First> <first token of Last>". Only one token
// of each is used, so "Jane Quimby Doe" and "Doe, Jane Q." both display as "Jane Doe".
// When one side is missing the other is returned alone.
func (p Person) Display() string {
	var parts []string
	if len(p.First) > 0 {
		parts = append(parts, p.First[0])
	}
	if len(p.Last) > 0 {
		parts = append(parts, p.Last[0])
	}
	return strings.Join(parts, " ")
}

// SplitList splits an author/editor field on the word "and" (any case) outside braces.
// "Doe, Jane and {Barnes and Noble}" -> ["Doe, Jane", "{Barnes and Noble}"].
func SplitList(field string) []string {
	words := splitAt(field, isSpace)
	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, " "))
		}
		cur = nil
	}
	for _, w := range words {
		if strings.EqualFold(w, "and") {
			flush()
			continue
		}
		cur = append(cur, w)
	}
	flush()
	return out
}

// ParseList parses every name in an author/editor field.
func ParseList(field string) []Person {
	raw := SplitList(field)
	if len(raw) == 0 {
		return nil
	}
	out := make([]Person, 0, len(raw))
	for _, n := range raw {
		out = append(out, Parse(n))
	}
	return out
}

// Parse parses a single name in any of the three BibTeX forms:
//
//	First von Last
//	von Last, First
//	von Last, Jr, First
//
// Commas beyond the second are folded into the First part.
func Parse(name string) Person {
	var p Person
	parts := splitAt(name, func(r rune) bool { return r == ',' })
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 3 {
		parts = append(parts[:2], strings.Join(parts[2:], " "))
	}
	switch len(parts) {
	case 3:
		p.vonLast(words(parts[0]))
		p.Lineage = words(parts[1])
		p.firstMiddle(words(parts[2]))
	case 2:
		p.vonLast(words(parts[0]))
		p.firstMiddle(words(parts[1]))
	case 1:
		ws := words(parts[0])
		pos := len(ws)
		for i, w := range ws {
			if isVon(w) {
				pos = i
				break
			}
		}
		firstMiddle, vonLast := ws[:pos], append([]string{}, ws[pos:]...)
		if len(vonLast) == 0 && len(firstMiddle) > 0 {
			vonLast = []string{firstMiddle[len(firstMiddle)-1]}
			firstMiddle = firstMiddle[:len(firstMiddle)-1]
		}
		p.firstMiddle(firstMiddle)
		p.vonLast(vonLast)
	}
	return p
}

func (p *Person) firstMiddle(ws []string) {
	if len(ws) == 0 {
		return
	}
	p.First = append(p.First, ws[0])
	p.Middle = append(p.Middle, ws[1:]...)
}

// vonLast assigns everything up to the last lowercase token (never the final
// token) to Prelast and the rest to Last.
func (p *Person) vonLast(ws []string) {
	if len(ws) == 0 {
		return
	}
	head, final := ws[:len(ws)-1], ws[len(ws)-1]
	pos := 0
	for i := len(head) - 1; i >= 0; i-- {
		if isVon(head[i]) {
			pos = i + 1
			break
		}
	}
	p.Prelast = append(p.Prelast, head[:pos]...)
	p.Last = append(p.Last, head[pos:]...)
	p.Last = append(p.Last, final)
}

// isVon reports whether the first letter of w at brace depth 0 is lowercase.
// A group opening with a control sequence ("{\'e}cole") counts by the letter
// that follows the command.
func isVon(w string) bool {
	rs := []rune(w)
	depth := 0
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '{':
			if depth == 0 && i+1 < len(rs) && rs[i+1] == '\\' {
				j := i + 2
				for j < len(rs) && unicode.IsLetter(rs[j]) {
					j++
				}
				if j == i+2 && j < len(rs) {
					j++ // single-symbol command like \'
				}
				for ; j < len(rs); j++ {
					if unicode.IsLetter(rs[j]) {
						return unicode.IsLower(rs[j])
					}
					if rs[j] == '}' {
						break
					}
				}
				return false
			}
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && unicode.IsLetter(r):
			return unicode.IsLower(r)
		}
	}
	return false
}

func words(s string) []string { return splitAt(s, isSpace) }

func isSpace(r rune) bool { return unicode.IsSpace(r) || r == '~' }

// splitAt splits s on runes matching sep at brace depth 0, dropping empty pieces
// when sep is whitespace-like. Comma splitting keeps empties so "Doe, , Jane"
// still yields three parts.
func splitAt(s string, sep func(rune) bool) []string {
	var out []string
	var b strings.Builder
	depth := 0
	keepEmpty := !sep(' ')
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && sep(r):
			if keepEmpty || b.Len() > 0 {
				out = append(out, b.String())
			}
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if keepEmpty || b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
