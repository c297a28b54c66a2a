package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Fakhri-abraar/taskdeck/internal/domain"
	"github.com/Fakhri-abraar/taskdeck/internal/store"
)

func TestTaskPredicates(t *testing.T) {
	t.Parallel()

	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name       string
		query      store.TaskQuery
		wantClause string
		wantArgs   []any
	}{
		{
			name: "mine scope only",
			query: store.TaskQuery{
				Scope:  store.ScopeMine,
				Caller: "alice",
			},
			wantClause: "t.author_id = $1",
			wantArgs:   []any{"alice"},
		},
		{
			name: "public scope only",
			query: store.TaskQuery{
				Scope: store.ScopePublic,
			},
			wantClause: "t.is_public = TRUE",
			wantArgs:   nil,
		},
		{
			name: "mine with search",
			query: store.TaskQuery{
				Scope:  store.ScopeMine,
				Caller: "alice",
				Filter: store.TaskFilter{Search: "report"},
			},
			wantClause: `t.author_id = $1 AND (t.title LIKE '%' || $2 || '%' ESCAPE '\' OR t.description LIKE '%' || $2 || '%' ESCAPE '\')`,
			wantArgs:   []any{"alice", "report"},
		},
		{
			name: "search with pattern metacharacters matches literally",
			query: store.TaskQuery{
				Scope:  store.ScopeMine,
				Caller: "alice",
				Filter: store.TaskFilter{Search: `50%_off\deal`},
			},
			wantClause: `t.author_id = $1 AND (t.title LIKE '%' || $2 || '%' ESCAPE '\' OR t.description LIKE '%' || $2 || '%' ESCAPE '\')`,
			wantArgs:   []any{"alice", `50\%\_off\\deal`},
		},
		{
			name: "public with priority and completion",
			query: store.TaskQuery{
				Scope: store.ScopePublic,
				Filter: store.TaskFilter{
					Priority:    domain.PriorityHigh,
					IsCompleted: boolPtr(false),
				},
			},
			wantClause: "t.is_public = TRUE AND t.priority = $1 AND t.is_completed = $2",
			wantArgs:   []any{"high", false},
		},
		{
			name: "all filters combined",
			query: store.TaskQuery{
				Scope:  store.ScopeMine,
				Caller: "alice",
				Filter: store.TaskFilter{
					Search:      "tax",
					Priority:    domain.PriorityMedium,
					IsCompleted: boolPtr(true),
				},
			},
			wantClause: `t.author_id = $1 AND (t.title LIKE '%' || $2 || '%' ESCAPE '\' OR t.description LIKE '%' || $2 || '%' ESCAPE '\') AND t.priority = $3 AND t.is_completed = $4`,
			wantArgs:   []any{"alice", "tax", "medium", true},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			clause, args := taskPredicates(tc.query)
			assert.Equal(t, tc.wantClause, clause)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestTaskOrderClause(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ORDER BY t.created_at ASC, t.id ASC", taskOrderClause(store.SortAsc))
	assert.Equal(t, "ORDER BY t.created_at DESC, t.id DESC", taskOrderClause(store.SortDesc))
	// Anything else falls back to newest first.
	assert.Equal(t, "ORDER BY t.created_at DESC, t.id DESC", taskOrderClause(store.SortOrder("")))
}
