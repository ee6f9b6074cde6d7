package handlers_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/api/handlers"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/testutil"
)

func getBody(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPageHandler_GameDetail(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		slug           string
		expectedStatus int
		contains       []string
	}{
		{
			name:           "game with link and local image",
			slug:           "furiosa-a-mad-max-saga-unreleased",
			expectedStatus: http.StatusOK,
			contains: []string{
				"<title>FURIOSA: A Mad-Max Saga (UNRELEASED)</title>",
				`src="/images/furiosa.jpg"`,
				`href="https://example.com/furiosa"`,
			},
		},
		{
			name:           "game without link gets placeholder",
			slug:           "john-wick-coming-soon",
			expectedStatus: http.StatusOK,
			contains:       []string{`href="#"`, "Tactical gun-fu action"},
		},
		{
			name:           "remote image kept",
			slug:           "nebula-drift",
			expectedStatus: http.StatusOK,
			contains:       []string{`src="https://cdn.example.com/nebula.jpg"`, "sci-fi &amp; more"},
		},
		{
			name:           "unknown slug",
			slug:           "half-life-3",
			expectedStatus: http.StatusNotFound,
			contains:       []string{"<h1>Game not found</h1>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := getBody(t, ts.BaseURL()+"/games/"+tt.slug)

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			for _, want := range tt.contains {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestPageHandler_GameDetailCatalogBroken(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.WriteRawCatalog(t, ts.CatalogDir, domain.CollectionGames, "not json")

	resp, body := getBody(t, ts.BaseURL()+"/games/nebula-drift")
	testutil.AssertStatusCode(t, resp, http.StatusInternalServerError)
	assert.Equal(t, "<h1>Server error</h1>", body)
}

func TestPageHandler_TitleIsEscaped(t *testing.T) {
	ts := testutil.NewTestServer(t)
	games := []domain.GameRecord{{Title: "<script>alert(1)</script>", Description: "x", Image: "/x.png"}}
	testutil.WriteCatalog(t, ts.CatalogDir, games, testutil.TechnologyFixture())

	resp, body := getBody(t, ts.BaseURL()+"/games/script-alert-1-script")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestPageHandler_ProfileRequiresSession(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := noRedirectClient()

	resp, err := client.Get(ts.BaseURL() + "/profile")
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusFound)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	token, _, err := ts.Services.Auth.IssueSession(domain.Principal{Provider: "google", Subject: "1", DisplayName: "Ava"})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.BaseURL()+"/profile", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "xgi_session", Value: token})

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Welcome Ava")
}

func TestPublicImageURL(t *testing.T) {
	assert.Equal(t, "/images/furiosa.jpg", handlers.PublicImageURL("/assets/img/furiosa.jpg"))
	assert.Equal(t, "https://cdn.test/a.png", handlers.PublicImageURL("https://cdn.test/a.png"))
}
