package stringsx

import "strings"

// FirstNonEmpty returns the first string in vals that is non-empty when trimmed.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// FirstPresent returns the value of the first non-nil pointer, or def when all are nil.
// A present empty string wins over later candidates.
func FirstPresent(def string, vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return def
}

// StripBraces removes every literal '{' and '}' from s.
func StripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// Unquote removes one layer of matching double or single quotes around s.
// "\"Jane\"" -> "Jane"; "'Jane" is returned unchanged.
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// CollapseSpace replaces runs of whitespace with a single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
