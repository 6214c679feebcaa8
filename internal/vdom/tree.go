// internal/vdom/tree.go
package vdom

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrAlreadyMounted is returned when Rebuild runs on a mounted tree.
var ErrAlreadyMounted = errors.New("vdom: tree already mounted")

type update func(w Writer) error

// Tree is a retained framework tree. Updates may be queued from any
// goroutine; they are applied on the goroutine that calls RenderImmediate.
type Tree struct {
	logger  *zap.Logger
	runtime *Runtime
	roots   []Node
	nextID  ElementID
	mounted bool

	mu      sync.Mutex
	pending []update
	wake    chan struct{}
}

var _ VirtualDOM = (*Tree)(nil)

// NewTree creates a tree with the given top-level nodes.
func NewTree(logger *zap.Logger, roots ...Node) *Tree {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("vdom")
	return &Tree{
		logger:  logger,
		runtime: NewRuntime(logger),
		roots:   roots,
		wake:    make(chan struct{}, 1),
	}
}

func (t *Tree) Runtime() *Runtime { return t.runtime }

// Roots returns the top-level nodes.
func (t *Tree) Roots() []Node { return t.roots }

// Rebuild assigns ids depth first, starting at 1, and writes every node.
func (t *Tree) Rebuild(w Writer) error {
	if t.mounted {
		return ErrAlreadyMounted
	}
	ids := make([]ElementID, 0, len(t.roots))
	for _, n := range t.roots {
		if err := t.create(w, n); err != nil {
			return err
		}
		ids = append(ids, n.ID())
	}
	if len(ids) > 0 {
		if err := w.AppendChildren(RootID, ids); err != nil {
			return fmt.Errorf("vdom: mounting roots: %w", err)
		}
	}
	t.mounted = true
	t.logger.Debug("Tree mounted.", zap.Int("nodes", int(t.nextID)))
	return nil
}

func (t *Tree) create(w Writer, n Node) error {
	t.nextID++
	id := t.nextID
	switch n := n.(type) {
	case *Text:
		n.id = id
		if err := w.CreateText(id, n.Content); err != nil {
			return fmt.Errorf("vdom: creating text %d: %w", id, err)
		}
	case *Element:
		n.id = id
		if err := w.CreateElement(id, n.Tag, n.Namespace); err != nil {
			return fmt.Errorf("vdom: creating <%s> %d: %w", n.Tag, id, err)
		}
		for _, a := range n.Attrs {
			if err := w.SetAttribute(id, a.Name, a.Namespace, a.Value); err != nil {
				return fmt.Errorf("vdom: setting %s on %d: %w", a.Name, id, err)
			}
		}
		for _, b := range n.bindings {
			t.runtime.On(id, b.name, b.fn)
		}
		children := make([]ElementID, 0, len(n.Children))
		for _, c := range n.Children {
			if err := t.create(w, c); err != nil {
				return err
			}
			children = append(children, c.ID())
		}
		if len(children) > 0 {
			if err := w.AppendChildren(id, children); err != nil {
				return fmt.Errorf("vdom: appending to %d: %w", id, err)
			}
		}
	default:
		return fmt.Errorf("vdom: unknown node type %T", n)
	}
	return nil
}

func (t *Tree) enqueue(u update) {
	t.mu.Lock()
	t.pending = append(t.pending, u)
	t.mu.Unlock()
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// SetAttribute queues an attribute change.
func (t *Tree) SetAttribute(el *Element, name, value string) {
	t.enqueue(func(w Writer) error {
		el.setAttr(name, "", value)
		if el.id == RootID {
			return nil
		}
		return w.SetAttribute(el.id, name, "", value)
	})
}

// RemoveAttribute queues an attribute removal.
func (t *Tree) RemoveAttribute(el *Element, name string) {
	t.enqueue(func(w Writer) error {
		if !el.removeAttr(name, "") || el.id == RootID {
			return nil
		}
		return w.RemoveAttribute(el.id, name, "")
	})
}

// SetText queues a text change.
func (t *Tree) SetText(tx *Text, content string) {
	t.enqueue(func(w Writer) error {
		tx.Content = content
		if tx.id == RootID {
			return nil
		}
		return w.SetText(tx.id, content)
	})
}

// Append queues child to be added under parent, or under the root when
// parent is nil.
func (t *Tree) Append(parent *Element, child Node) {
	t.enqueue(func(w Writer) error {
		parentID := RootID
		if parent == nil {
			t.roots = append(t.roots, child)
		} else {
			parent.Children = append(parent.Children, child)
			parentID = parent.id
		}
		if !t.mounted || (parent != nil && parent.id == RootID) {
			return nil
		}
		if err := t.create(w, child); err != nil {
			return err
		}
		return w.AppendChildren(parentID, []ElementID{child.ID()})
	})
}

// Remove queues n and its subtree for removal.
func (t *Tree) Remove(n Node) {
	t.enqueue(func(w Writer) error {
		if !t.detach(n) {
			return nil
		}
		Walk(n, func(c Node) bool {
			if c.ID() != RootID {
				t.runtime.Off(c.ID())
			}
			return true
		})
		if n.ID() == RootID {
			return nil
		}
		return w.Remove(n.ID())
	})
}

func (t *Tree) detach(n Node) bool {
	for i, r := range t.roots {
		if r == n {
			t.roots = append(t.roots[:i], t.roots[i+1:]...)
			return true
		}
	}
	found := false
	for _, r := range t.roots {
		Walk(r, func(c Node) bool {
			el, ok := c.(*Element)
			if !ok {
				return true
			}
			for i, child := range el.Children {
				if child == n {
					el.Children = append(el.Children[:i], el.Children[i+1:]...)
					found = true
					return false
				}
			}
			return true
		})
		if found {
			break
		}
	}
	return found
}

// Ready reports whether updates are queued.
func (t *Tree) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending) > 0
}

// WaitForWork blocks until an update is queued or ctx is done.
func (t *Tree) WaitForWork(ctx context.Context) error {
	for {
		if t.Ready() {
			return nil
		}
		select {
		case <-t.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// RenderImmediate applies every queued update in order. The first failing
// update stops the batch; the rest are dropped.
func (t *Tree) RenderImmediate(w Writer) error {
	t.mu.Lock()
	batch := t.pending
	t.pending = nil
	t.mu.Unlock()

	for i, u := range batch {
		if err := u(w); err != nil {
			t.logger.Warn("Dropping queued updates after a failure.", zap.Int("dropped", len(batch)-i-1), zap.Error(err))
			return err
		}
	}
	if len(batch) > 0 {
		t.logger.Debug("Applied queued updates.", zap.Int("count", len(batch)))
	}
	return nil
}
