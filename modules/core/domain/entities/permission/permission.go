package permission

// Action is one of the four operations a portal object can be gated on.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionCreate, ActionEdit, ActionDelete:
		return true
	}
	return false
}

// ObjectPermission is the resolved permission of one user for one
// portal object, OR-merged across every role the user holds.
type ObjectPermission struct {
	ObjectCode string `json:"object_code"`
	CanView    bool   `json:"can_view"`
	CanCreate  bool   `json:"can_create"`
	CanEdit    bool   `json:"can_edit"`
	CanDelete  bool   `json:"can_delete"`
}

func (p ObjectPermission) Allows(action Action) bool {
	switch action {
	case ActionView:
		return p.CanView
	case ActionCreate:
		return p.CanCreate
	case ActionEdit:
		return p.CanEdit
	case ActionDelete:
		return p.CanDelete
	}
	return false
}

// Set is a user's full permission set, keyed by portal object code.
type Set map[string]ObjectPermission

// Has reports whether the set allows the action on the object. A code
// absent from the set denies everything.
func (s Set) Has(objectCode string, action Action) bool {
	p, ok := s[objectCode]
	if !ok {
		return false
	}
	return p.Allows(action)
}

// Merge ORs another resolved permission row into the set.
func (s Set) Merge(p ObjectPermission) {
	existing := s[p.ObjectCode]
	existing.ObjectCode = p.ObjectCode
	existing.CanView = existing.CanView || p.CanView
	existing.CanCreate = existing.CanCreate || p.CanCreate
	existing.CanEdit = existing.CanEdit || p.CanEdit
	existing.CanDelete = existing.CanDelete || p.CanDelete
	s[p.ObjectCode] = existing
}

// Page is what a page-level consumer derives from the set for one
// portal object.
type Page struct {
	CanView               bool `json:"can_view"`
	CanCreate             bool `json:"can_create"`
	CanEdit               bool `json:"can_edit"`
	CanDelete             bool `json:"can_delete"`
	IsReadOnly            bool `json:"is_read_only"`
	HasAnyWritePermission bool `json:"has_any_write_permission"`
	CanExport             bool `json:"can_export"`
	CanImport             bool `json:"can_import"`
}

// PageFor derives page-level flags for the object code:
// read-only means viewable with no write action available; export
// follows view, import follows create.
func PageFor(s Set, objectCode string) Page {
	p := s[objectCode]
	anyWrite := p.CanCreate || p.CanEdit || p.CanDelete
	return Page{
		CanView:               p.CanView,
		CanCreate:             p.CanCreate,
		CanEdit:               p.CanEdit,
		CanDelete:             p.CanDelete,
		IsReadOnly:            p.CanView && !anyWrite,
		HasAnyWritePermission: anyWrite,
		CanExport:             p.CanView,
		CanImport:             p.CanCreate,
	}
}
