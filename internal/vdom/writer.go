// internal/vdom/writer.go
package vdom

import "context"

// Writer receives the mutations that keep a host tree in step with the
// framework tree. Parents are always created before AppendChildren names
// them.
type Writer interface {
	CreateElement(id ElementID, tag, namespace string) error
	CreateText(id ElementID, content string) error
	SetAttribute(id ElementID, name, namespace, value string) error
	RemoveAttribute(id ElementID, name, namespace string) error
	SetText(id ElementID, content string) error
	AppendChildren(parent ElementID, children []ElementID) error
	Remove(id ElementID) error
}

// VirtualDOM is what a host needs from a framework tree.
type VirtualDOM interface {
	// Rebuild writes the whole tree under RootID.
	Rebuild(w Writer) error
	// RenderImmediate applies queued updates without waiting.
	RenderImmediate(w Writer) error
	// Ready reports whether updates are queued.
	Ready() bool
	// WaitForWork blocks until updates are queued or ctx ends.
	WaitForWork(ctx context.Context) error
	Runtime() *Runtime
}
