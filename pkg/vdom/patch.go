package vdom

// OpKind is the type of patch operation.
type OpKind uint8

const (
	OpNone    OpKind = iota // No change
	OpReplace               // Replace node entirely
	OpText                  // Update text content
	OpUpdate                // Update attributes and/or children in place
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpNone:
		return "None"
	case OpReplace:
		return "Replace"
	case OpText:
		return "Text"
	case OpUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// Op describes the mutation needed to bring one host node in sync with a
// new virtual tree. It is produced by Diff, consumed exactly once by the
// patcher, then discarded.
type Op struct {
	Kind OpKind

	// Node is the replacement subtree for OpReplace. A nil Node means the
	// host node should be removed rather than replaced.
	Node *VNode

	// Text is the new text content for OpText.
	Text string

	// Attrs and Children are the in-place edits for OpUpdate.
	Attrs    []AttrPatch
	Children []ChildPatch
}

// IsNone reports whether the op carries no mutation.
func (op Op) IsNone() bool { return op.Kind == OpNone }

// AttrPatch is a single attribute edit.
type AttrPatch struct {
	Remove bool   // true: remove Key; false: set Key to Value
	Key    string
	Value  any
}

// ChildKind discriminates child patch operations.
type ChildKind uint8

const (
	ChildUpdate ChildKind = iota // Recurse into the child at Index
	ChildAppend                  // Append Node after existing children
	ChildRemove                  // Remove the child at Index
)

// String returns the string representation of the ChildKind.
func (k ChildKind) String() string {
	switch k {
	case ChildUpdate:
		return "Update"
	case ChildAppend:
		return "Append"
	case ChildRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// ChildPatch is a single positional child edit. The patcher applies all
// updates first, then appends, then removals in descending index order,
// so earlier removals never invalidate later indices.
type ChildPatch struct {
	Kind  ChildKind
	Index int    // For ChildUpdate and ChildRemove
	Node  *VNode // For ChildAppend
	Op    Op     // For ChildUpdate
}
