package frontend

import (
	"net/url"
	"strings"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

// View is a state of the hash router.
type View string

const (
	ViewHome       View = "/"
	ViewGames      View = "/games"
	ViewTechnology View = "/technology"
)

// Views lists every router state.
func Views() []View {
	return []View{ViewHome, ViewGames, ViewTechnology}
}

// Collection reports which catalog collection a view fetches, if any.
func (v View) Collection() (domain.Collection, bool) {
	switch v {
	case ViewGames:
		return domain.CollectionGames, true
	case ViewTechnology:
		return domain.CollectionTechnology, true
	}
	return "", false
}

// Route is the navigable state encoded in the location hash.
type Route struct {
	View   View
	Search string
}

// ParseHash decodes "#/games?search=wick". An empty or unknown path is Home.
func ParseHash(hash string) Route {
	hash = strings.TrimPrefix(hash, "#")
	p, rawQuery, _ := strings.Cut(hash, "?")

	route := Route{View: ViewHome}
	switch View(p) {
	case ViewGames, ViewTechnology:
		route.View = View(p)
	default:
		return route
	}

	params, _ := url.ParseQuery(rawQuery)
	route.Search = params.Get("search")
	return route
}

// Hash encodes the route the way the browser stores it.
func (r Route) Hash() string {
	if r.View == ViewHome || r.View == "" {
		return "#/"
	}
	if r.Search == "" {
		return "#" + string(r.View)
	}
	return "#" + string(r.View) + "?search=" + EncodeURIComponent(r.Search)
}

// EncodeURIComponent escapes s for use as a query value, using %20 for
// spaces.
func EncodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
