package doi

import (
	"fmt"
	"strings"
)

// Resolver is the canonical DOI resolver base used in rendered links.
const Resolver = "https://doi.org/"

var prefixes = strings.NewReplacer("https://doi.org/", "", "http://dx.doi.org/", "")

// Clean removes every occurrence of the known resolver URL prefixes from raw,
// so values stored either as bare DOIs or as resolver URLs yield the bare DOI.
func Clean(raw string) string { return prefixes.Replace(raw) }

// URL returns the canonical resolver URL for raw.
func URL(raw string) string { return Resolver + Clean(raw) }

// Link renders the Markdown link suffix appended to a citation, or "" when raw is empty.
func Link(raw string) string {
	if raw == "" {
		return ""
	}
	return fmt.Sprintf(" [[Link](%s)]", URL(raw))
}
