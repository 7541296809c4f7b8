package portalobject_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/portalobject"
)

func ptr(v uint) *uint { return &v }

func TestBuildTreeNesting(t *testing.T) {
	items := []portalobject.PortalObject{
		{ID: 1, Code: "documents", ObjectType: portalobject.TypeSection},
		{ID: 2, Code: "documents.list", ObjectType: portalobject.TypePage, ParentID: ptr(1)},
		{ID: 3, Code: "documents.tags", ObjectType: portalobject.TypePage, ParentID: ptr(1)},
		{ID: 4, Code: "chessboard", ObjectType: portalobject.TypeSection},
		{ID: 5, Code: "documents.tags.edit", ObjectType: portalobject.TypeAction, ParentID: ptr(3)},
	}

	roots := portalobject.BuildTree(items)
	require.Len(t, roots, 2)
	require.Equal(t, "documents", roots[0].Code)
	require.Equal(t, "chessboard", roots[1].Code)

	require.Len(t, roots[0].Children, 2)
	require.Equal(t, "documents.list", roots[0].Children[0].Code)
	require.Equal(t, "documents.tags", roots[0].Children[1].Code)
	require.Len(t, roots[0].Children[1].Children, 1)
	require.Equal(t, "documents.tags.edit", roots[0].Children[1].Children[0].Code)
}

func TestBuildTreeOrphanBecomesRoot(t *testing.T) {
	// Parent 99 is not part of the fetched slice; the node must survive
	// as a root, not disappear.
	items := []portalobject.PortalObject{
		{ID: 7, Code: "orphan", ParentID: ptr(99)},
	}
	roots := portalobject.BuildTree(items)
	require.Len(t, roots, 1)
	require.Equal(t, "orphan", roots[0].Code)
	require.Empty(t, roots[0].Children)
}

func TestBuildTreeSiblingOrderFollowsInput(t *testing.T) {
	items := []portalobject.PortalObject{
		{ID: 1, Code: "root"},
		{ID: 3, Code: "b", ParentID: ptr(1)},
		{ID: 2, Code: "a", ParentID: ptr(1)},
	}
	roots := portalobject.BuildTree(items)
	require.Len(t, roots, 1)
	require.Equal(t, "b", roots[0].Children[0].Code)
	require.Equal(t, "a", roots[0].Children[1].Code)
}

// Permuting the input must never change the parent/children structure,
// only sibling order.
func TestBuildTreeStructureStableUnderPermutation(t *testing.T) {
	items := []portalobject.PortalObject{
		{ID: 1, Code: "r1"},
		{ID: 2, Code: "r1.a", ParentID: ptr(1)},
		{ID: 3, Code: "r1.b", ParentID: ptr(1)},
		{ID: 4, Code: "r1.a.x", ParentID: ptr(2)},
		{ID: 5, Code: "r2"},
		{ID: 6, Code: "lost", ParentID: ptr(42)},
	}

	want := parentIndex(portalobject.BuildTree(items))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]portalobject.PortalObject, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		require.Equal(t, want, parentIndex(portalobject.BuildTree(shuffled)))
	}
}

// parentIndex flattens a forest into child-code -> parent-code, roots
// mapping to "".
func parentIndex(roots []*portalobject.WithChildren) map[string]string {
	out := make(map[string]string)
	var walk func(parent string, node *portalobject.WithChildren)
	walk = func(parent string, node *portalobject.WithChildren) {
		out[node.Code] = parent
		for _, child := range node.Children {
			walk(node.Code, child)
		}
	}
	for _, root := range roots {
		walk("", root)
	}
	return out
}
