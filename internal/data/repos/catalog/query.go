package catalog

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching substr anywhere.
func containsPattern(substr string) string {
	return "%" + likeEscaper.Replace(substr) + "%"
}

const likeEscape = `ESCAPE '\'`

const storeOrder = "created_at ASC, id ASC"

// foldsInSQL reports whether the database case-folds non-ASCII text itself.
// SQLite's LOWER and LIKE only fold ASCII, so those rows are matched in Go.
func foldsInSQL(q *gorm.DB) bool {
	return q.Dialector != nil && q.Dialector.Name() == "postgres"
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func equalFold(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}

// keep filters rows in place, preserving store order.
func keep[T any](rows []T, match func(T) bool) []T {
	out := rows[:0]
	for _, row := range rows {
		if match(row) {
			out = append(out, row)
		}
	}
	return out
}
