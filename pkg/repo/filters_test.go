package repo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/pkg/repo"
)

func TestFilterRendering(t *testing.T) {
	t.Run("eq", func(t *testing.T) {
		f := repo.Eq(42)
		require.Equal(t, "c.id = $3", f.String("c.id", 3))
		require.Equal(t, []any{42}, f.Value())
	})

	t.Run("ilike", func(t *testing.T) {
		f := repo.ILike("%мат%")
		require.Equal(t, "m.name ILIKE $1", f.String("m.name", 1))
		require.Equal(t, []any{"%мат%"}, f.Value())
	})

	t.Run("in", func(t *testing.T) {
		f := repo.In(1, 2, 3)
		require.Equal(t, "r.id IN ($2, $3, $4)", f.String("r.id", 2))
		require.Equal(t, []any{1, 2, 3}, f.Value())
	})

	t.Run("in with no values matches nothing", func(t *testing.T) {
		f := repo.In()
		require.Equal(t, "FALSE", f.String("r.id", 1))
		require.Empty(t, f.Value())
	})

	t.Run("is null consumes no args", func(t *testing.T) {
		f := repo.IsNull()
		require.Equal(t, "cm.block_id IS NULL", f.String("cm.block_id", 7))
		require.Empty(t, f.Value())
	})
}

func TestJoinHelpers(t *testing.T) {
	require.Equal(t, "SELECT 1 WHERE a = $1 LIMIT 10", repo.Join("SELECT 1", "", repo.JoinWhere("a = $1"), repo.FormatLimitOffset(10, 0)))
	require.Equal(t, "", repo.JoinWhere())
	require.Equal(t, "LIMIT 5 OFFSET 20", repo.FormatLimitOffset(5, 20))
	require.Equal(t, "", repo.FormatLimitOffset(0, 0))
}

func TestSortBy(t *testing.T) {
	type field int
	const (
		name field = iota
		createdAt
		unknown
	)
	fieldMap := map[field]string{name: "t.name", createdAt: "t.created_at"}

	s := repo.SortBy[field]{Fields: []field{name, unknown, createdAt}, Ascending: true}
	require.Equal(t, "ORDER BY t.name, t.created_at ASC", s.ToSQL(fieldMap))

	empty := repo.SortBy[field]{}
	require.Equal(t, "", empty.ToSQL(fieldMap))
}
