package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"loreweaver/internal/store"
	"loreweaver/internal/store/sqlstore"
)

const uniqueViolation = "23505"

// headlineOptions mirror the SQLite snippet: marked matches in a window of
// about 32 words.
const headlineOptions = "StartSel=<mark>, StopSel=</mark>, MaxWords=32, MinWords=16"

// tsqueryOperators are stripped from tokens so user text cannot change the
// shape of the query.
const tsqueryOperators = `"'&|!():*<>\`

// Dialect adapts sqlstore to PostgreSQL. The search index is a plain
// table with a generated tsvector, maintained by the store itself.
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

// Rebind numbers '?' placeholders as $1, $2, ... outside quoted literals.
func (Dialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (Dialect) IndexTriggers() bool { return false }

func (Dialect) TranslateQuery(text string) string { return buildTSQuery(text) }

func (Dialect) SearchSQL(match string, q store.SearchQuery) (string, []any) {
	filter, filterArgs := sqlstore.KindFilter(q.EntityTypes)
	query := `SELECT entity_type, entity_id, name,
		ts_headline('english', content, q, '` + headlineOptions + `'),
		-ts_rank(document, q) AS rank
	FROM search_index, to_tsquery('english', ?) AS q
	WHERE document @@ q AND campaign_id = ?` + filter + `
	ORDER BY rank, name
	LIMIT ?`
	args := append([]any{match, q.CampaignID}, filterArgs...)
	return query, append(args, q.EffectiveLimit())
}

func (Dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// buildTSQuery turns free text into a prefix tsquery: tokens are split on
// whitespace, stripped of operator characters, suffixed with ":*" and
// AND-ed together.
func buildTSQuery(text string) string {
	var terms []string
	for _, token := range strings.Fields(text) {
		token = strings.Map(func(r rune) rune {
			if strings.ContainsRune(tsqueryOperators, r) {
				return -1
			}
			return r
		}, token)
		if token == "" {
			continue
		}
		terms = append(terms, token+":*")
	}
	return strings.Join(terms, " & ")
}
