// internal/browser/dom/hit.go
package dom

// HitResult names the node under a point and the point in that node's local space.
type HitResult struct {
	NodeID NodeID
	X, Y   float64
}

// Hit finds the topmost node whose layout box contains the viewport point.
func (d *Document) Hit(x, y float64) (HitResult, bool) {
	root, ok := d.nodes[RootNodeID]
	if !ok {
		return HitResult{}, false
	}
	return d.hitNode(root, x, y)
}

// hitNode tests children before the node itself. Later children paint over
// earlier ones, so they are tried first. A boxed node whose border box and
// content area both miss the point prunes its subtree; boxless nodes such as
// the document node never prune.
func (d *Document) hitNode(n *Node, x, y float64) (HitResult, bool) {
	lx := x - n.Layout.Location.X
	ly := y - n.Layout.Location.Y

	if n.Layout.HasBox() && !within(n.Layout.Size, lx, ly) && !within(n.Layout.ContentSize, lx, ly) {
		return HitResult{}, false
	}

	for i := len(n.Children) - 1; i >= 0; i-- {
		child, ok := d.nodes[n.Children[i]]
		if !ok {
			continue
		}
		if hit, ok := d.hitNode(child, lx, ly); ok {
			return hit, true
		}
	}

	if n.Layout.Contains(lx, ly) {
		return HitResult{NodeID: n.ID, X: lx, Y: ly}, true
	}
	return HitResult{}, false
}

// parentHit re-expresses a local point in the node's layout parent frame.
// The root has no layout parent.
func parentHit(n *Node, x, y float64) (HitResult, bool) {
	parent, ok := n.LayoutParent()
	if !ok {
		return HitResult{}, false
	}
	return HitResult{
		NodeID: parent,
		X:      x + n.Layout.Location.X,
		Y:      y + n.Layout.Location.Y,
	}, true
}

// AbsolutePosition returns the border box origin of a node in viewport coordinates.
func (d *Document) AbsolutePosition(id NodeID) (Point, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return Point{}, false
	}
	var p Point
	for {
		p.X += n.Layout.Location.X
		p.Y += n.Layout.Location.Y
		parent, has := n.LayoutParent()
		if !has {
			return p, true
		}
		if n, ok = d.nodes[parent]; !ok {
			return p, true
		}
	}
}
