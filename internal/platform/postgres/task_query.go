package postgres

import (
	"fmt"
	"strings"

	"github.com/Fakhri-abraar/taskdeck/internal/store"
)

// taskPredicates builds the WHERE clause and positional arguments shared
// by the count and page queries of a task listing. The clause starts
// with the scope predicate; filter predicates combine with AND.
func taskPredicates(q store.TaskQuery) (string, []any) {
	var conds []string
	var args []any

	switch q.Scope {
	case store.ScopeMine:
		args = append(args, q.Caller)
		conds = append(conds, fmt.Sprintf("t.author_id = $%d", len(args)))
	default:
		// ScopePublic: visible to anyone, author irrelevant.
		conds = append(conds, "t.is_public = TRUE")
	}

	if q.Filter.Search != "" {
		// Case-sensitive exact-substring match against title OR
		// description, no normalization. LIKE metacharacters in the
		// term are escaped so they match literally.
		args = append(args, escapeLike(q.Filter.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(t.title LIKE '%%' || $%d || '%%' ESCAPE '\' OR t.description LIKE '%%' || $%d || '%%' ESCAPE '\')`, n, n))
	}

	if q.Filter.Priority != "" {
		args = append(args, string(q.Filter.Priority))
		conds = append(conds, fmt.Sprintf("t.priority = $%d", len(args)))
	}

	if q.Filter.IsCompleted != nil {
		args = append(args, *q.Filter.IsCompleted)
		conds = append(conds, fmt.Sprintf("t.is_completed = $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes the LIKE pattern metacharacters in a search term.
// The resulting value is only valid against a pattern carrying an
// ESCAPE '\' clause.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// taskOrderClause returns the ORDER BY clause for the given direction.
// The id tie-break keeps pagination reproducible when several tasks
// share a creation timestamp.
func taskOrderClause(order store.SortOrder) string {
	if order == store.SortAsc {
		return "ORDER BY t.created_at ASC, t.id ASC"
	}
	return "ORDER BY t.created_at DESC, t.id DESC"
}
