package bom

// TreeState tracks per-node expand/collapse for display mode. Nodes at depth
// 0 and 1 start expanded, deeper subtrees start collapsed. Toggling a node
// never touches sibling or ancestor state and never invalidates the resolved
// tree; it only changes which subtree Visible reports.
type TreeState struct {
	expanded map[string]bool
}

// NewTreeState builds the initial expand state for a resolved tree.
func NewTreeState(root *Node) *TreeState {
	s := &TreeState{expanded: map[string]bool{}}
	if root == nil {
		return s
	}
	lines, err := Flatten(root, 1)
	if err != nil {
		return s
	}
	for _, l := range lines {
		s.expanded[l.Path] = l.Depth <= 1
	}
	return s
}

// Expanded reports whether the node at path is currently open.
func (s *TreeState) Expanded(path string) bool {
	return s.expanded[path]
}

// Toggle flips the expand state of a single node.
func (s *TreeState) Toggle(path string) {
	s.expanded[path] = !s.expanded[path]
}

// Visible walks the tree in display mode: a node is reported when every
// ancestor is expanded. Collapsed subtrees stay resolved, they are just
// withheld from the result.
func Visible(root *Node, buildQty float64, s *TreeState) ([]Line, error) {
	lines, err := Flatten(root, buildQty)
	if err != nil {
		return nil, err
	}
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if ancestorsExpanded(s, l.Path) {
			out = append(out, l)
		}
	}
	return out, nil
}

func ancestorsExpanded(s *TreeState, path string) bool {
	for p := ParentPath(path); p != ""; p = ParentPath(p) {
		if !s.Expanded(p) {
			return false
		}
	}
	return true
}
