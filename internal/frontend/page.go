package frontend

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultSearchDebounce is the pause after the last keystroke before a
// search is issued.
const DefaultSearchDebounce = 400 * time.Millisecond

// Page is the hash-routed single page: it reacts to navigation and search
// input and drives the renderer.
type Page struct {
	ctx      context.Context
	renderer *Renderer
	history  History
	onRender func(RenderResult)

	mu         sync.Mutex
	current    Route
	debouncers map[View]*Debouncer
}

type PageOption func(*Page)

// WithRenderHook registers fn to observe every completed load, including
// loads triggered by debounced input.
func WithRenderHook(fn func(RenderResult)) PageOption {
	return func(p *Page) { p.onRender = fn }
}

func NewPage(ctx context.Context, renderer *Renderer, history History, debounce time.Duration, opts ...PageOption) *Page {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	p := &Page{
		ctx:        ctx,
		renderer:   renderer,
		history:    history,
		debouncers: make(map[View]*Debouncer),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, v := range []View{ViewGames, ViewTechnology} {
		view := v
		p.debouncers[view] = NewDebouncer(debounce, func(value string) {
			p.applySearch(view, value)
		})
	}
	return p
}

// Start routes to the initial location, defaulting to Home.
func (p *Page) Start() RenderResult {
	if p.history.Hash() == "" {
		p.history.ReplaceHash(Route{View: ViewHome}.Hash())
	}
	return p.route()
}

// HashChanged re-routes after the location hash changed.
func (p *Page) HashChanged() RenderResult {
	return p.route()
}

// Navigate follows a link to hash.
func (p *Page) Navigate(hash string) RenderResult {
	p.history.PushHash(hash)
	return p.route()
}

// Input feeds the current value of a search box. The search runs once input
// pauses for the debounce delay.
func (p *Page) Input(view View, value string) {
	if d, ok := p.debouncers[view]; ok {
		d.Trigger(value)
	}
}

// Current returns the route currently displayed.
func (p *Page) Current() Route {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Close cancels pending debounced searches.
func (p *Page) Close() {
	for _, d := range p.debouncers {
		d.Stop()
	}
}

func (p *Page) applySearch(view View, value string) {
	next := Route{View: view, Search: strings.TrimSpace(value)}
	// replace, not push: typing must not reload the page or grow history
	p.history.ReplaceHash(next.Hash())
	p.route()
}

func (p *Page) route() RenderResult {
	route := ParseHash(p.history.Hash())

	p.mu.Lock()
	p.current = route
	p.mu.Unlock()

	result := p.renderer.Load(p.ctx, route)
	if p.onRender != nil {
		p.onRender(result)
	}
	return result
}
