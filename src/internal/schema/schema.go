package schema

import (
	"publist/src/internal/names"
	"publist/src/internal/stringsx"
)

// Defaults substituted for missing fields when an entry is rendered.
const (
	DefaultYear    = "n.d."
	DefaultTitle   = "Untitled"
	DefaultVenue   = "Preprint"
	DefaultSortKey = "0000"
)

// Entry is one citation record parsed from a bibliography file.
type Entry struct {
	Key     string
	Type    string
	Fields  Fields
	Authors []names.Person
	Editors []names.Person
}

// Fields holds the fields the renderer reads as optional values (nil = absent)
// and every other field verbatim in Extra.
type Fields struct {
	Year      *string
	Title     *string
	Journal   *string
	Booktitle *string
	Publisher *string
	DOI       *string
	Extra     map[string]string
}

// Set stores a field by its lower-case BibTeX name.
func (f *Fields) Set(name, value string) {
	v := value
	switch name {
	case "year":
		f.Year = &v
	case "title":
		f.Title = &v
	case "journal":
		f.Journal = &v
	case "booktitle":
		f.Booktitle = &v
	case "publisher":
		f.Publisher = &v
	case "doi":
		f.DOI = &v
	default:
		if f.Extra == nil {
			f.Extra = map[string]string{}
		}
		f.Extra[name] = v
	}
}

// YearOrDefault returns the year field or "n.d.".
func (e Entry) YearOrDefault() string { return stringsx.FirstPresent(DefaultYear, e.Fields.Year) }

// TitleOrDefault returns the raw title field or "Untitled".
func (e Entry) TitleOrDefault() string { return stringsx.FirstPresent(DefaultTitle, e.Fields.Title) }

// Venue returns journal, else booktitle, else publisher, else "Preprint".
// Presence decides, so an empty journal field still wins.
func (e Entry) Venue() string {
	return stringsx.FirstPresent(DefaultVenue, e.Fields.Journal, e.Fields.Booktitle, e.Fields.Publisher)
}

// DOI returns the doi field, empty when absent.
func (e Entry) DOI() string { return stringsx.FirstPresent("", e.Fields.DOI) }

// SortYear is the key entries are ordered by: the year string when it is made
// only of ASCII digits, otherwise "0000". Comparison is lexicographic.
func (e Entry) SortYear() string {
	if e.Fields.Year == nil || !isDigits(*e.Fields.Year) {
		return DefaultSortKey
	}
	return *e.Fields.Year
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
