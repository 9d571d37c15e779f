package bom

// Node is one occurrence of a part within its parent assembly. Qty is the
// quantity consumed by exactly one unit of the immediate parent, not a
// cumulative value. A node with no children is a purchased (leaf) part.
//
// A tree is an immutable snapshot: consumers never mutate it in place, and
// two occurrences of the same IPN at different positions are distinct nodes
// addressed by their positional path.
type Node struct {
	IPN         string  `json:"ipn"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Ref         string  `json:"ref,omitempty"`
	Children    []Node  `json:"children,omitempty"`
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}
