package frontend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

// ContentSource provides catalog records for the renderer. The HTTP client
// below and the server's catalog service both satisfy it.
type ContentSource interface {
	Games(ctx context.Context, search string) ([]domain.GameRecord, error)
	Technology(ctx context.Context, search string) ([]domain.TechnologyRecord, error)
}

// APIClient fetches catalog records from the HTTP content API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (c *APIClient) Games(ctx context.Context, search string) ([]domain.GameRecord, error) {
	var games []domain.GameRecord
	if err := c.get(ctx, domain.CollectionGames, search, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *APIClient) Technology(ctx context.Context, search string) ([]domain.TechnologyRecord, error) {
	var techs []domain.TechnologyRecord
	if err := c.get(ctx, domain.CollectionTechnology, search, &techs); err != nil {
		return nil, err
	}
	return techs, nil
}

// ContentURL builds the request URL for a collection and optional search.
func (c *APIClient) ContentURL(collection domain.Collection, search string) string {
	u := c.baseURL + "/api/" + string(collection)
	if search != "" {
		u += "?search=" + EncodeURIComponent(search)
	}
	return u
}

func (c *APIClient) get(ctx context.Context, collection domain.Collection, search string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ContentURL(collection, search), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.Unmarshal(body, &apiErr)
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}
