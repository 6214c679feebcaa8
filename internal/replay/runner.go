// internal/replay/runner.go
package replay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/lattice/internal/bridge"
	"github.com/xkilldash9x/lattice/internal/browser/dom"
	"github.com/xkilldash9x/lattice/internal/config"
	"github.com/xkilldash9x/lattice/internal/vdom"
)

// ErrSelectorNoMatch is returned when a layout or event selector matches no
// node.
var ErrSelectorNoMatch = errors.New("replay: selector matched nothing")

// Runner replays scenarios against fresh documents.
type Runner struct {
	cfg    config.DocumentConfig
	logger *zap.Logger
}

// NewRunner creates a runner. cfg supplies the viewport and base URL that
// scenarios do not override.
func NewRunner(cfg config.DocumentConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger.Named("replay")}
}

// navigationRecorder keeps every navigation a document requests.
type navigationRecorder struct {
	mu       sync.Mutex
	requests []dom.NavigationOptions
}

func (n *navigationRecorder) NavigateTo(opts dom.NavigationOptions) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, opts)
}

// session is one scenario's document plus what was recorded while it ran.
type session struct {
	sc     *Scenario
	inner  *dom.Document
	host   *bridge.Document
	nav    *navigationRecorder
	events []FrameworkEvent
	logger *zap.Logger
}

func (r *Runner) documentConfig(sc *Scenario) config.DocumentConfig {
	cfg := r.cfg
	if sc.BaseURL != "" {
		cfg.BaseURL = sc.BaseURL
	}
	if vp := sc.Viewport; vp != nil {
		if vp.Width > 0 {
			cfg.ViewportWidth = vp.Width
		}
		if vp.Height > 0 {
			cfg.ViewportHeight = vp.Height
		}
		if vp.Scale > 0 {
			cfg.Scale = vp.Scale
		}
		if vp.Scheme != "" {
			cfg.ColorScheme = vp.Scheme
		}
	}
	return cfg
}

func (r *Runner) open(sc *Scenario) (*session, error) {
	logger := r.logger.With(zap.String("scenario", sc.Name))
	s := &session{sc: sc, nav: &navigationRecorder{}, logger: logger}
	cfg := r.documentConfig(sc)

	switch sc.mode() {
	case ModeDocument:
		opts := []dom.Option{dom.WithLogger(logger), dom.WithNavigationProvider(s.nav)}
		s.inner = dom.NewDocument(dom.NewViewport(cfg.ViewportWidth, cfg.ViewportHeight, cfg.Scale, dom.ParseColorScheme(cfg.ColorScheme)), opts...)
		if err := s.inner.SetBaseURL(cfg.BaseURL); err != nil {
			return nil, err
		}
		if _, err := s.inner.ImportHTML(dom.RootNodeID, strings.NewReader(sc.HTML)); err != nil {
			return nil, err
		}
	default:
		roots, err := vdom.FromHTML(strings.NewReader(sc.HTML))
		if err != nil {
			return nil, err
		}
		tree := vdom.NewTree(logger, roots...)
		tree.Runtime().Observe(s.observe)
		host, err := bridge.New(tree, cfg, logger, dom.WithNavigationProvider(s.nav))
		if err != nil {
			return nil, err
		}
		s.host = host
		s.inner = host.Inner()
	}
	return s, nil
}

func (s *session) observe(name string, _ *vdom.Event, id vdom.ElementID) {
	fe := FrameworkEvent{Name: name, Element: uint64(id)}
	if n, ok := s.host.NodeFor(id); ok {
		fe.Target = s.inner.GenerateUniqueXPath(n)
		fe.node = n
	}
	s.events = append(s.events, fe)
}

func (s *session) applyLayout() error {
	for _, b := range s.sc.Layout {
		ids, err := s.inner.QueryXPath(b.Selector)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("layout %q: %w", b.Selector, ErrSelectorNoMatch)
		}
		pad := dom.Edges{Top: b.Padding, Right: b.Padding, Bottom: b.Padding, Left: b.Padding}
		border := dom.Edges{Top: b.Border, Right: b.Border, Bottom: b.Border, Left: b.Border}
		for _, id := range ids {
			n, _ := s.inner.Node(id)
			n.Layout = dom.Layout{
				Location:    dom.Point{X: b.X, Y: b.Y},
				Size:        dom.Size{Width: b.Width, Height: b.Height},
				ContentSize: dom.Size{Width: b.ContentWidth, Height: b.ContentHeight},
				Padding:     pad,
				Border:      border,
			}
		}
	}
	return nil
}

func (s *session) dispatch(ev *dom.DomEvent) error {
	if s.host == nil {
		s.inner.HandleEvent(ev)
		return nil
	}
	s.host.HandleEvent(ev)
	_, err := s.host.Poll()
	return err
}

// Run replays one scenario. Setup failures are returned as errors;
// unmet expectations are listed in the report.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	s, err := r.open(sc)
	if err != nil {
		return nil, fmt.Errorf("opening scenario %q: %w", sc.Name, err)
	}
	if err := s.applyLayout(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	for i, step := range sc.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, err := s.buildEvent(step)
		if err != nil {
			return nil, fmt.Errorf("scenario %q step %d: %w", sc.Name, i, err)
		}
		s.logger.Debug("Replaying step.", zap.Int("step", i), zap.String("event", ev.Name()), zap.Int("target", int(ev.Target)))
		if err := s.dispatch(ev); err != nil {
			return nil, fmt.Errorf("scenario %q step %d: %w", sc.Name, i, err)
		}
	}

	report := s.report()
	if sc.Expect != nil {
		report.Failures = s.check(sc.Expect, report)
	}
	r.logger.Info("Scenario replayed.",
		zap.String("scenario", sc.Name),
		zap.Int("events", len(sc.Events)),
		zap.Bool("passed", report.Passed()))
	return report, nil
}

// RunAll replays scenarios concurrently, at most concurrency at a time. A
// scenario that fails to run gets a report carrying the error; only
// cancellation aborts the batch.
func (r *Runner) RunAll(ctx context.Context, scenarios []*Scenario, concurrency int) ([]*Report, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	reports := make([]*Report, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := r.Run(gctx, sc)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				r.logger.Warn("Scenario failed to run.", zap.String("scenario", sc.Name), zap.Error(err))
				report = &Report{Name: sc.Name, Source: sc.Source, Mode: sc.mode(), Error: err.Error()}
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
