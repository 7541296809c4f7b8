package portalobject

// WithChildren is a portal object materialized into its tree position.
type WithChildren struct {
	PortalObject
	Children []*WithChildren `json:"children"`
}

// BuildTree converts a flat parent-referencing list into a forest.
// First pass indexes every record by id; second pass attaches each node
// to its parent when the parent is present in the input, otherwise the
// node is promoted to a root. The promotion is deliberate: it keeps
// partially fetched or filtered inputs renderable. Sibling order equals
// input order.
func BuildTree(items []PortalObject) []*WithChildren {
	index := make(map[uint]*WithChildren, len(items))
	nodes := make([]*WithChildren, 0, len(items))
	for _, item := range items {
		node := &WithChildren{PortalObject: item, Children: []*WithChildren{}}
		index[item.ID] = node
		nodes = append(nodes, node)
	}

	roots := make([]*WithChildren, 0, len(items))
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := index[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
