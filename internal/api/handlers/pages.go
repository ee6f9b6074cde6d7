package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/api/middleware"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/service"
)

var gamePageTemplate = template.Must(template.New("game").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/css/detail.css" />
</head>
<body>
  <a href="/">&larr; Back</a>
  <h1>{{.Title}}</h1>
  <p class="description">{{.Description}}</p>
  {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
  <p><a href="{{.Link}}" target="_blank" rel="noopener">Official Link / Learn More</a></p>
</body>
</html>
`))

var profilePageTemplate = template.Must(template.New("profile").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Profile</title>
  <link rel="stylesheet" href="/css/detail.css" />
</head>
<body>
  <h1>Welcome {{.Name}}</h1>
  <pre>{{.Raw}}</pre>
  <a href="/logout">Logout</a>
</body>
</html>
`))

type PageHandler struct {
	catalogService *service.CatalogService
}

func NewPageHandler(catalogService *service.CatalogService) *PageHandler {
	return &PageHandler{catalogService: catalogService}
}

type gamePage struct {
	Title       string
	Description string
	Image       string
	Link        string
}

// GameDetail handles GET /games/{slug} with a server-rendered page.
func (h *PageHandler) GameDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	game, err := h.catalogService.GameBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeHTML(w, http.StatusNotFound, "<h1>Game not found</h1>")
			return
		}
		logrus.WithError(err).WithField("slug", slug).Error("[pages.GameDetail] failed to load game")
		writeHTML(w, http.StatusInternalServerError, "<h1>Server error</h1>")
		return
	}

	page := gamePage{
		Title:       game.Title,
		Description: game.Description,
		Image:       PublicImageURL(game.Image),
		Link:        game.LinkOrPlaceholder(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := gamePageTemplate.Execute(w, page); err != nil {
		logrus.WithError(err).Error("[pages.GameDetail] render failed")
	}
}

// Profile handles GET /profile for signed-in visitors.
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	raw, err := json.MarshalIndent(principal, "", "  ")
	if err != nil {
		logrus.WithError(err).Error("[pages.Profile] failed to encode principal")
		writeHTML(w, http.StatusInternalServerError, "<h1>Server error</h1>")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = profilePageTemplate.Execute(w, struct {
		Name string
		Raw  string
	}{Name: principal.Name(), Raw: string(raw)})
	if err != nil {
		logrus.WithError(err).Error("[pages.Profile] render failed")
	}
}

// PublicImageURL maps root-relative catalog images onto the /images mount and
// leaves absolute URLs untouched.
func PublicImageURL(image string) string {
	if strings.HasPrefix(image, "/") {
		return "/images/" + path.Base(image)
	}
	return image
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
