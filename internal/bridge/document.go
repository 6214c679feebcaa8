// internal/bridge/document.go
package bridge

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/lattice/internal/browser/dom"
	"github.com/xkilldash9x/lattice/internal/config"
	"github.com/xkilldash9x/lattice/internal/vdom"
)

// Document hosts a framework tree on top of a dom.Document. Events go to the
// framework's handlers first; the document's default actions run only when
// no handler prevented them.
type Document struct {
	inner  *dom.Document
	vdom   vdom.VirtualDOM
	state  *State
	writer *MutationWriter
	logger *zap.Logger
}

// New creates the document, mounts a synthetic <html> element under the
// document node for the framework root and writes the initial tree. Options
// are applied to the inner document after the ones derived from cfg.
func New(v vdom.VirtualDOM, cfg config.DocumentConfig, logger *zap.Logger, opts ...dom.Option) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}
	viewport := dom.NewViewport(cfg.ViewportWidth, cfg.ViewportHeight, scale, dom.ParseColorScheme(cfg.ColorScheme))

	domOpts := []dom.Option{dom.WithLogger(logger)}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("bridge: invalid base url %q: %w", cfg.BaseURL, err)
		}
		domOpts = append(domOpts, dom.WithBaseURL(u))
	}
	inner := dom.NewDocument(viewport, append(domOpts, opts...)...)

	htmlID := inner.CreateElement("html", nil)
	if err := inner.AppendChild(dom.RootNodeID, htmlID); err != nil {
		return nil, fmt.Errorf("bridge: mounting html element: %w", err)
	}

	logger = logger.Named("bridge")
	state := NewState(htmlID)
	d := &Document{
		inner:  inner,
		vdom:   v,
		state:  state,
		writer: NewMutationWriter(inner, state, logger),
		logger: logger,
	}
	if err := d.initialBuild(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) initialBuild() error {
	if err := d.vdom.Rebuild(d.writer); err != nil {
		return fmt.Errorf("bridge: initial build: %w", err)
	}
	d.logger.Debug("Initial build complete.", zap.Int("elements", d.state.Len()))
	d.inner.PrintTree()
	return nil
}

// Inner returns the underlying document.
func (d *Document) Inner() *dom.Document { return d.inner }

func (d *Document) ID() uuid.UUID { return d.inner.ID() }

// State returns the framework id mapping.
func (d *Document) State() *State { return d.state }

// NodeFor returns the document node created for a framework element.
func (d *Document) NodeFor(id vdom.ElementID) (dom.NodeID, bool) {
	return d.state.NodeFor(id)
}

// Poll applies queued framework updates if there are any, without blocking.
// It reports whether anything was rendered.
func (d *Document) Poll() (bool, error) {
	if !d.vdom.Ready() {
		return false, nil
	}
	if err := d.vdom.RenderImmediate(d.writer); err != nil {
		return true, fmt.Errorf("bridge: rendering updates: %w", err)
	}
	return true, nil
}

// WaitAndRender blocks until the framework has work or ctx is done, then
// renders it.
func (d *Document) WaitAndRender(ctx context.Context) error {
	if err := d.vdom.WaitForWork(ctx); err != nil {
		return err
	}
	_, err := d.Poll()
	return err
}

// LabelBoundInputElement returns the first control bound to a label that
// belongs to the framework tree.
func (d *Document) LabelBoundInputElement(label dom.NodeID) (vdom.ElementID, dom.NodeID, bool) {
	for _, id := range d.inner.LabelBoundInputElements(label) {
		n, ok := d.inner.Node(id)
		if !ok {
			continue
		}
		if fid, ok := frameworkID(n.Element()); ok {
			return fid, id, true
		}
	}
	return 0, 0, false
}
