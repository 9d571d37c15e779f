package bom

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrCycle is returned when a malformed tree references an ancestor IPN.
// Wrapped errors name the offending part.
var ErrCycle = fmt.Errorf("invalid BOM: cycle detected")

// Line is one visited node of a walked tree. QtyRequired is the build
// quantity multiplied by Qty along the path from the root to this node.
// Path is the positional address ("0.2.1" style child indexes), so repeated
// IPNs at different positions stay distinguishable.
type Line struct {
	IPN         string  `json:"ipn"`
	Description string  `json:"description"`
	Ref         string  `json:"ref,omitempty"`
	Path        string  `json:"path"`
	Depth       int     `json:"depth"`
	QtyRequired float64 `json:"qty_required"`
	Leaf        bool    `json:"leaf"`
}

// Flatten walks every node of the tree exactly once and returns the
// multiplied requirement lines in depth-first order. The root's own Qty is
// ignored (it has no parent edge); its requirement is buildQty. A nil root
// yields an empty set so callers can render a "no BOM data" fallback.
//
// Flatten is a pure function of (root, buildQty): walking the same tree
// twice produces identical lines.
func Flatten(root *Node, buildQty float64) ([]Line, error) {
	if root == nil {
		return []Line{}, nil
	}
	lines := make([]Line, 0, 16)
	seen := map[string]bool{}
	if err := walk(root, "0", 0, buildQty, seen, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func walk(n *Node, path string, depth int, required float64, onPath map[string]bool, out *[]Line) error {
	if onPath[n.IPN] {
		return fmt.Errorf("%w: %s repeats on its own path", ErrCycle, n.IPN)
	}
	*out = append(*out, Line{
		IPN:         n.IPN,
		Description: n.Description,
		Ref:         n.Ref,
		Path:        path,
		Depth:       depth,
		QtyRequired: required,
		Leaf:        n.Leaf(),
	})
	onPath[n.IPN] = true
	for i := range n.Children {
		child := &n.Children[i]
		childPath := path + "." + strconv.Itoa(i)
		if err := walk(child, childPath, depth+1, required*child.Qty, onPath, out); err != nil {
			return err
		}
	}
	delete(onPath, n.IPN)
	return nil
}

// Leaves filters a flattened line set down to purchased parts, the inputs
// for cost rollup and inventory netting.
func Leaves(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Leaf {
			out = append(out, l)
		}
	}
	return out
}

// ParentPath returns the positional path of a line's parent, or "" for the
// root.
func ParentPath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[:i]
}
