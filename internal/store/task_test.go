package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskQueryNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    TaskQuery
		wantPage int
		wantSize int
		wantSort SortOrder
	}{
		{
			name:     "zero values get defaults",
			query:    TaskQuery{},
			wantPage: DefaultPage,
			wantSize: DefaultPageSize,
			wantSort: SortDesc,
		},
		{
			name:     "negative page and size get defaults",
			query:    TaskQuery{Page: -3, PageSize: -1},
			wantPage: DefaultPage,
			wantSize: DefaultPageSize,
			wantSort: SortDesc,
		},
		{
			name:     "unknown sort order falls back to desc",
			query:    TaskQuery{Page: 2, PageSize: 5, SortOrder: SortOrder("upward")},
			wantPage: 2,
			wantSize: 5,
			wantSort: SortDesc,
		},
		{
			name:     "explicit values survive",
			query:    TaskQuery{Page: 4, PageSize: 25, SortOrder: SortAsc},
			wantPage: 4,
			wantSize: 25,
			wantSort: SortAsc,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q := tc.query
			q.Normalize()

			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantSize, q.PageSize)
			assert.Equal(t, tc.wantSort, q.SortOrder)
		})
	}
}

func TestTaskQueryOffset(t *testing.T) {
	t.Parallel()

	q := TaskQuery{Page: 1, PageSize: 10}
	assert.Equal(t, 0, q.Offset())

	q = TaskQuery{Page: 2, PageSize: 10}
	assert.Equal(t, 10, q.Offset())

	q = TaskQuery{Page: 3, PageSize: 7}
	assert.Equal(t, 14, q.Offset())
}
