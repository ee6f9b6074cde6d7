package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/repository/memory"
	"github.com/xylexgaming/xgi-website/internal/testutil"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestPlayerHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "successful registration",
			request:        map[string]string{"username": "ava", "email": "ava@example.com"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing username",
			request:        map[string]string{"email": "ava@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "username and email are required",
		},
		{
			name:           "missing email",
			request:        map[string]string{"username": "ava"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "username and email are required",
		},
		{
			name:           "invalid email",
			request:        map[string]string{"username": "ava", "email": "ava-at-example"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "email is not a valid address",
		},
		{
			name:    "duplicate email",
			request: map[string]string{"username": "ava", "email": "taken@example.com"},
			setup: func() {
				testutil.NewPlayerBuilder().
					WithEmail("taken@example.com").
					Build(t, ts.Repos.Player)
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "Email already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/player"), tt.request)
			defer resp.Body.Close()

			if tt.expectedError != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
				return
			}

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			var result struct {
				OK bool   `json:"ok"`
				ID string `json:"id"`
			}
			testutil.AssertJSONResponse(t, resp, &result)
			assert.True(t, result.OK)
			assert.NotEmpty(t, result.ID)
		})
	}
}

func TestPlayerHandler_RegisterInvalidBody(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Post(ts.APIURL("/player"), "application/json", strings.NewReader(`{"username":`))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid request body")
}

func TestPlayerHandler_DuplicateCreatesNoRecord(t *testing.T) {
	ts := testutil.NewTestServer(t)

	first := postJSON(t, ts.APIURL("/player"), map[string]string{"username": "ava", "email": "ava@example.com"})
	first.Body.Close()
	testutil.AssertStatusCode(t, first, http.StatusCreated)

	second := postJSON(t, ts.APIURL("/player"), map[string]string{"username": "bob", "email": "ava@example.com"})
	defer second.Body.Close()
	testutil.AssertErrorResponse(t, second, http.StatusConflict, "Email already exists")

	var count int64
	require.NoError(t, ts.DB.DB.Table("players").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlayerHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	testutil.NewPlayerBuilder().WithUsername("first").WithCreatedAt(base).Build(t, ts.Repos.Player)
	testutil.NewPlayerBuilder().WithUsername("third").WithCreatedAt(base.Add(2*time.Hour)).Build(t, ts.Repos.Player)
	testutil.NewPlayerBuilder().WithUsername("second").WithCreatedAt(base.Add(time.Hour)).Build(t, ts.Repos.Player)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		want           []string
	}{
		{"newest first", "", http.StatusOK, []string{"third", "second", "first"}},
		{"limit", "?limit=2", http.StatusOK, []string{"third", "second"}},
		{"bad limit", "?limit=abc", http.StatusBadRequest, nil},
		{"zero limit", "?limit=0", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.APIURL("/players" + tt.query))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.want == nil {
				return
			}

			var players []struct {
				Username  string    `json:"username"`
				Email     string    `json:"email"`
				CreatedAt time.Time `json:"createdAt"`
			}
			testutil.AssertJSONResponse(t, resp, &players)
			names := make([]string, 0, len(players))
			for _, p := range players {
				names = append(names, p.Username)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestPlayerHandler_Subscribe(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postJSON(t, ts.APIURL("/newsletter"), map[string]string{"email": "fan@example.com"})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var body struct {
		Message string `json:"message"`
	}
	testutil.AssertJSONResponse(t, resp, &body)
	assert.Equal(t, "Subscribed!", body.Message)

	again := postJSON(t, ts.APIURL("/newsletter"), map[string]string{"email": "FAN@example.com"})
	defer again.Body.Close()
	testutil.AssertErrorResponse(t, again, http.StatusConflict, "Email already subscribed")

	missing := postJSON(t, ts.APIURL("/newsletter"), map[string]string{})
	defer missing.Body.Close()
	testutil.AssertErrorResponse(t, missing, http.StatusBadRequest, "Email is required")
}

func TestPlayerHandler_StoreUnavailable(t *testing.T) {
	// never connected
	ts := testutil.NewTestServer(t, testutil.WithStore(memory.NewStore()))

	resp := postJSON(t, ts.APIURL("/player"), map[string]string{"username": "ava", "email": "ava@example.com"})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusServiceUnavailable, "Database not available")

	list, err := http.Get(ts.APIURL("/players"))
	require.NoError(t, err)
	defer list.Body.Close()
	testutil.AssertErrorResponse(t, list, http.StatusServiceUnavailable, "Database not available")

	sub := postJSON(t, ts.APIURL("/newsletter"), map[string]string{"email": "fan@example.com"})
	defer sub.Body.Close()
	testutil.AssertErrorResponse(t, sub, http.StatusServiceUnavailable, "Database not available")

	// catalog does not depend on the store
	games, err := http.Get(ts.APIURL("/games"))
	require.NoError(t, err)
	defer games.Body.Close()
	testutil.AssertStatusCode(t, games, http.StatusOK)
}
