package ast

// NodeID indexes a node in a Tree's arena.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Attachment records where a node is used: the parent that holds it and the
// slot it occupies. Attachments live in the Tree, never in the node, so a
// node shared by several call sites stays immutable.
type Attachment struct {
	Parent NodeID
	Slot   string
	Index  int
}

// Tree is the result of a successful parse: the root node plus an arena
// giving every reachable node an id and an attachment.
type Tree struct {
	nodes       []Node
	attachments []Attachment
	ids         map[Node]NodeID
}

// NewTree indexes every node reachable from root.
func NewTree(root Node) *Tree {
	t := &Tree{ids: map[Node]NodeID{}}
	if root != nil {
		t.add(root, Attachment{Parent: NoNode, Index: -1})
	}
	return t
}

func (t *Tree) add(n Node, at Attachment) {
	if _, seen := t.ids[n]; seen {
		return
	}
	id := NodeID(len(t.nodes))
	t.ids[n] = id
	t.nodes = append(t.nodes, n)
	t.attachments = append(t.attachments, at)
	for _, c := range Children(n) {
		t.add(c.Node, Attachment{Parent: id, Slot: c.Name, Index: c.Index})
	}
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() Node {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[0]
}

// Len returns the number of indexed nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// ID returns the arena id of n.
func (t *Tree) ID(n Node) (NodeID, bool) {
	id, ok := t.ids[n]
	return id, ok
}

// NodeAt returns the node with the given id.
func (t *Tree) NodeAt(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Attachment returns the use-site record of n.
func (t *Tree) Attachment(n Node) (Attachment, bool) {
	id, ok := t.ids[n]
	if !ok {
		return Attachment{}, false
	}
	return t.attachments[id], true
}

// Parent returns the node holding n, or nil for the root and unknown nodes.
func (t *Tree) Parent(n Node) Node {
	at, ok := t.Attachment(n)
	if !ok {
		return nil
	}
	return t.NodeAt(at.Parent)
}

// Slot returns the name of the slot n occupies in its parent, with the
// index within repeated slots. The root has an empty slot.
func (t *Tree) Slot(n Node) (string, int) {
	at, ok := t.Attachment(n)
	if !ok {
		return "", -1
	}
	return at.Slot, at.Index
}
