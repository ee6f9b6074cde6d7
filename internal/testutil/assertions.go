package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies an {"error": ...} body with the expected
// status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var body struct {
		Error string `json:"error"`
	}
	AssertJSONResponse(t, resp, &body)
	assert.Equal(t, expectedMessage, body.Error, "error message mismatch")
}

// AssertTitles verifies the titles of a decoded catalog response, in order
func AssertTitles(t *testing.T, records []map[string]interface{}, expected ...string) {
	t.Helper()

	titles := make([]string, 0, len(records))
	for _, r := range records {
		title, _ := r["title"].(string)
		if name, ok := r["name"].(string); ok && name != "" {
			title = name
		}
		titles = append(titles, title)
	}
	if expected == nil {
		expected = []string{}
	}
	assert.Equal(t, expected, titles, "unexpected catalog titles")
}
