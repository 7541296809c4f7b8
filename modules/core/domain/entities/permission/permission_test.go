package permission_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
)

func TestSetHas(t *testing.T) {
	set := permission.Set{}
	set.Merge(permission.ObjectPermission{ObjectCode: "documents", CanView: true})

	require.True(t, set.Has("documents", permission.ActionView))
	require.False(t, set.Has("documents", permission.ActionEdit))
	require.False(t, set.Has("chessboard", permission.ActionView))
	require.False(t, set.Has("documents", permission.Action("export")))
}

func TestMergeIsOrAcrossRoles(t *testing.T) {
	set := permission.Set{}
	// Viewer role grants view, editor role grants edit; the user holds both.
	set.Merge(permission.ObjectPermission{ObjectCode: "chessboard", CanView: true})
	set.Merge(permission.ObjectPermission{ObjectCode: "chessboard", CanEdit: true})

	p := set["chessboard"]
	require.True(t, p.CanView)
	require.True(t, p.CanEdit)
	require.False(t, p.CanCreate)
	require.False(t, p.CanDelete)
}

func TestPageDerivation(t *testing.T) {
	t.Run("read only means view without any write", func(t *testing.T) {
		set := permission.Set{}
		set.Merge(permission.ObjectPermission{ObjectCode: "documents", CanView: true})

		page := permission.PageFor(set, "documents")
		require.True(t, page.IsReadOnly)
		require.False(t, page.HasAnyWritePermission)
		require.True(t, page.CanExport)
		require.False(t, page.CanImport)
	})

	t.Run("any write flag clears read only", func(t *testing.T) {
		for _, p := range []permission.ObjectPermission{
			{ObjectCode: "documents", CanView: true, CanCreate: true},
			{ObjectCode: "documents", CanView: true, CanEdit: true},
			{ObjectCode: "documents", CanView: true, CanDelete: true},
		} {
			set := permission.Set{}
			set.Merge(p)
			page := permission.PageFor(set, "documents")
			require.False(t, page.IsReadOnly)
			require.True(t, page.HasAnyWritePermission)
		}
	})

	t.Run("import follows create", func(t *testing.T) {
		set := permission.Set{}
		set.Merge(permission.ObjectPermission{ObjectCode: "chessboard", CanCreate: true})
		page := permission.PageFor(set, "chessboard")
		require.True(t, page.CanImport)
		require.False(t, page.CanExport)
		require.False(t, page.IsReadOnly)
	})

	t.Run("unknown object denies everything", func(t *testing.T) {
		page := permission.PageFor(permission.Set{}, "missing")
		require.False(t, page.CanView)
		require.False(t, page.IsReadOnly)
		require.False(t, page.HasAnyWritePermission)
	})
}
