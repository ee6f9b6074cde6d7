package frontend

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Document is the part of the page the renderer paints into.
type Document interface {
	// ShowView makes v the only visible view.
	ShowView(v View)
	SetContent(v View, html string)
}

type Outcome string

const (
	OutcomeNone      Outcome = "none"
	OutcomeRendered  Outcome = "rendered"
	OutcomeEmpty     Outcome = "empty"
	OutcomeFallback  Outcome = "fallback"
	OutcomeDiscarded Outcome = "discarded"
)

// RenderResult describes what one Load call did to the document.
type RenderResult struct {
	Seq     uint64
	Route   Route
	Outcome Outcome
	Count   int
	Err     error
}

// Renderer fetches content for a route and paints it. Every load takes a new
// sequence number; a response is painted only if its number is still the
// latest issued, so a slow earlier request can never overwrite a later one.
type Renderer struct {
	source    ContentSource
	doc       Document
	assetBase string

	mu     sync.Mutex
	latest uint64
}

func NewRenderer(source ContentSource, doc Document, assetBase string) *Renderer {
	return &Renderer{source: source, doc: doc, assetBase: assetBase}
}

// Load shows route's view and, for content views, fetches and renders it.
func (r *Renderer) Load(ctx context.Context, route Route) RenderResult {
	r.mu.Lock()
	r.latest++
	seq := r.latest
	r.doc.ShowView(route.View)
	if _, ok := route.View.Collection(); ok {
		r.doc.SetContent(route.View, loadingHTML)
	}
	r.mu.Unlock()

	result := RenderResult{Seq: seq, Route: route, Outcome: OutcomeNone}
	if _, ok := route.View.Collection(); !ok {
		return result
	}

	html, count, err := r.fetch(ctx, route)
	if err != nil {
		logrus.WithError(err).WithField("view", route.View).Warn("[frontend] content fetch failed, using fallback")
		result.Err = err
		html, count = r.fallback(route.View)
		result.Outcome = OutcomeFallback
	} else if count == 0 {
		result.Outcome = OutcomeEmpty
	} else {
		result.Outcome = OutcomeRendered
	}
	result.Count = count

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.latest {
		result.Outcome = OutcomeDiscarded
		return result
	}
	r.doc.SetContent(route.View, html)
	return result
}

// Latest returns the most recently issued sequence number.
func (r *Renderer) Latest() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

func (r *Renderer) fetch(ctx context.Context, route Route) (string, int, error) {
	switch route.View {
	case ViewGames:
		games, err := r.source.Games(ctx, route.Search)
		if err != nil {
			return "", 0, err
		}
		html, err := RenderGames(games, r.assetBase)
		return html, len(games), err
	case ViewTechnology:
		techs, err := r.source.Technology(ctx, route.Search)
		if err != nil {
			return "", 0, err
		}
		html, err := RenderTechnology(techs, r.assetBase)
		return html, len(techs), err
	}
	return "", 0, fmt.Errorf("view %q has no content", route.View)
}

// fallback renders the embedded snapshot, unfiltered, so the view is never
// blank.
func (r *Renderer) fallback(v View) (string, int) {
	snapshot := Fallback()
	var (
		html string
		err  error
		n    int
	)
	switch v {
	case ViewGames:
		html, err = RenderGames(snapshot.Games, r.assetBase)
		n = len(snapshot.Games)
	case ViewTechnology:
		html, err = RenderTechnology(snapshot.Technology, r.assetBase)
		n = len(snapshot.Technology)
	}
	if err != nil {
		logrus.WithError(err).Error("[frontend] failed to render fallback snapshot")
		return `<p class="error-message" role="alert">Something went wrong</p>`, 0
	}
	return html, n
}
