package frontend

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

const (
	loadingHTML = `<div class="loading-spinner" role="status"></div>`

	emptyGamesHTML      = `<p class="error-message">No games match your search.</p>`
	emptyTechnologyHTML = `<p class="error-message">No technology matches your search.</p>`
)

var cardTemplates = template.Must(template.New("cards").Parse(`
{{define "game"}}<div class="game-card" data-slug="{{.Slug}}">
  <div class="game-img"><img src="{{.Image}}" alt="{{.Title}} cover" loading="lazy"></div>
  <div class="game-content">
    <h3><a href="/games/{{.Slug}}">{{.Title}}</a></h3>
    <p>{{.Description}}</p>
    <div class="game-actions">
      {{- if .VideoURL}}
      <button type="button" class="btn btn-learn-more" data-video="{{.VideoURL}}" aria-expanded="false">Learn More</button>
      {{- end}}
      <button type="button" class="btn btn-download" data-modal="download-modal" data-title="{{.Title}}">Download</button>
      <a class="btn btn-link" href="{{.Link}}" target="_blank" rel="noopener">Official Site</a>
    </div>
    {{- if .VideoURL}}
    <div class="video-preview" hidden></div>
    {{- end}}
  </div>
</div>
{{end}}
{{define "technology"}}<div class="tech-card" data-slug="{{.Slug}}">
  <div class="tech-icon">{{if .IconIsImage}}<img src="{{.Icon}}" alt="{{.Title}}" loading="lazy">{{else}}<i class="{{.Icon}}" aria-hidden="true"></i>{{end}}</div>
  <h3>{{.Title}}</h3>
  <p>{{.Description}}</p>
</div>
{{end}}`))

// GameCard is the presentation model of a game record.
type GameCard struct {
	Title       string
	Slug        string
	Description string
	Image       string
	Link        string
	VideoURL    string
}

// TechnologyCard is the presentation model of a technology record.
type TechnologyCard struct {
	Title       string
	Slug        string
	Description string
	Icon        string
	IconIsImage bool
}

func NewGameCard(g domain.GameRecord, assetBase string) GameCard {
	return GameCard{
		Title:       g.Title,
		Slug:        g.Slug(),
		Description: g.Description,
		Image:       assetURL(assetBase, g.Image),
		Link:        g.LinkOrPlaceholder(),
		VideoURL:    EmbedVideoURL(g.YouTube),
	}
}

func NewTechnologyCard(t domain.TechnologyRecord, assetBase string) TechnologyCard {
	card := TechnologyCard{
		Title:       t.DisplayTitle(),
		Slug:        t.Slug(),
		Description: t.Description,
		Icon:        t.Icon,
	}
	if t.RenderType() == domain.TechnologyTypeImage {
		card.IconIsImage = true
		card.Icon = assetURL(assetBase, t.Icon)
	}
	return card
}

// RenderGames renders one card per game, or the empty-result message.
func RenderGames(games []domain.GameRecord, assetBase string) (string, error) {
	if len(games) == 0 {
		return emptyGamesHTML, nil
	}
	var buf bytes.Buffer
	for _, g := range games {
		if err := cardTemplates.ExecuteTemplate(&buf, "game", NewGameCard(g, assetBase)); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func RenderTechnology(techs []domain.TechnologyRecord, assetBase string) (string, error) {
	if len(techs) == 0 {
		return emptyTechnologyHTML, nil
	}
	var buf bytes.Buffer
	for _, t := range techs {
		if err := cardTemplates.ExecuteTemplate(&buf, "technology", NewTechnologyCard(t, assetBase)); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// EmbedVideoURL turns a YouTube watch or share link into an embeddable URL.
// Anything unrecognised yields "" so no preview is offered.
func EmbedVideoURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	var id string
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.TrimPrefix(u.Path, "/shorts/")
		}
	}
	if id == "" || strings.ContainsAny(id, "/?&") {
		return ""
	}
	return "https://www.youtube-nocookie.com/embed/" + id
}

func assetURL(base, ref string) string {
	if strings.HasPrefix(ref, "/") {
		return strings.TrimRight(base, "/") + ref
	}
	return ref
}
