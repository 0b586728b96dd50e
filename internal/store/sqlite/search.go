package sqlite

import "strings"

const (
	markOpen      = "<mark>"
	markClose     = "</mark>"
	snippetTokens = "32"
)

// buildFTSQuery turns free text into an FTS5 prefix query: every
// whitespace-separated token loses its double quotes and gains a trailing
// '*'. Blank input yields "".
func buildFTSQuery(text string) string {
	var terms []string
	for _, token := range strings.Fields(text) {
		token = strings.ReplaceAll(token, `"`, "")
		if token == "" {
			continue
		}
		terms = append(terms, token+"*")
	}
	return strings.Join(terms, " ")
}
