package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAPI points a client at an httptest server, standing in for
// INSTANCE.atlassian.net/wiki.
func testAPI(t *testing.T, srv *httptest.Server) *API {
	t.Helper()

	api, err := NewAPI("example", "user@example.com", "secret-token")
	require.NoError(t, err)

	base, err := url.Parse(srv.URL + "/wiki")
	require.NoError(t, err)

	api.BaseURI = base
	api.Client = srv.Client()
	return api
}

func TestNewAPIValidation(t *testing.T) {
	tests := []struct {
		name     string
		instance string
		username string
		token    string
		errorMsg string
	}{
		{
			name:     "missing instance",
			username: "user@example.com",
			token:    "tok",
			errorMsg: "--confluence-instance",
		},
		{
			name:     "missing username",
			instance: "example",
			token:    "tok",
			errorMsg: "--auth-username",
		},
		{
			name:     "missing token",
			instance: "example",
			username: "user@example.com",
			errorMsg: "auth token is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAPI(tt.instance, tt.username, tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}

	api, err := NewAPI("example", "user@example.com", "tok")
	require.NoError(t, err)
	assert.Equal(t, "https://example.atlassian.net/wiki", api.BaseURI.String())
}

func TestGetContentByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/wiki/rest/api/content/12345", r.URL.Path)
		assert.Equal(t, "body.storage,version,space", r.URL.Query().Get("expand"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "expected basic auth header")
		assert.Equal(t, "user@example.com", user)
		assert.Equal(t, "secret-token", pass)

		fmt.Fprint(w, `{
			"id": "12345",
			"type": "page",
			"status": "current",
			"title": "Release Notes",
			"space": {"id": 99, "key": "ENG"},
			"version": {"number": 7, "when": "2025-06-01T10:00:00.000Z"},
			"body": {"storage": {"value": "<p>hello</p>", "representation": "storage"}}
		}`)
	}))
	defer srv.Close()

	api := testAPI(t, srv)

	page, err := api.GetContentByID(context.Background(), "12345", GetContentByIDQuery{
		Expand: []string{"body.storage", "version", "space"},
	})
	require.NoError(t, err)

	assert.Equal(t, "12345", page.ID)
	assert.Equal(t, "Release Notes", page.Title)
	require.NotNil(t, page.Version)
	assert.Equal(t, 7, page.Version.Number)
	assert.Equal(t, "<p>hello</p>", page.Body.Storage.Value)
	require.NotNil(t, page.Space)
	assert.Equal(t, "ENG", page.Space.Key)
}

func TestGetContentByIDRequiresID(t *testing.T) {
	api, err := NewAPI("example", "user@example.com", "tok")
	require.NoError(t, err)

	_, err = api.GetContentByID(context.Background(), "", GetContentByIDQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please provide ID")
}

func TestUpdateContent(t *testing.T) {
	var received UpdateContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/wiki/rest/api/content/12345", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		fmt.Fprint(w, `{
			"id": "12345",
			"title": "Release Notes",
			"version": {"number": 8},
			"body": {"storage": {"value": "new body", "representation": "storage"}}
		}`)
	}))
	defer srv.Close()

	api := testAPI(t, srv)

	updated, err := api.UpdateContent(context.Background(), "12345", UpdateContentRequest{
		Version: Version{Number: 8, Message: "status banner"},
		Title:   "Release Notes",
		Type:    "page",
		Body: Body{
			Storage: Storage{Value: "new body", Representation: "storage"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, received.Version.Number)
	assert.Equal(t, "status banner", received.Version.Message)
	assert.Equal(t, "page", received.Type)
	assert.Equal(t, "storage", received.Body.Storage.Representation)
	assert.Equal(t, "new body", received.Body.Storage.Value)

	require.NotNil(t, updated.Version)
	assert.Equal(t, 8, updated.Version.Number)
}

func TestUpdateContentSurfacesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"statusCode":409,"message":"Version must be incremented on update"}`)
	}))
	defer srv.Close()

	api := testAPI(t, srv)

	_, err := api.UpdateContent(context.Background(), "12345", UpdateContentRequest{
		Version: Version{Number: 3},
		Title:   "Release Notes",
		Type:    "page",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Version must be incremented on update")
}

func TestRequestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		errorMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, "authentication failed"},
		{"unavailable", http.StatusServiceUnavailable, "service is not available"},
		{"server error", http.StatusInternalServerError, "internal server error"},
		{"conflict", http.StatusConflict, "conflict"},
		{"bad request", http.StatusBadRequest, "bad request"},
		{"teapot", http.StatusTeapot, "unknown HTTP response status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			api := testAPI(t, srv)

			_, err := api.GetContent(context.Background(), ContentQuery{SpaceKey: "ENG"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/rest/api/user/current", r.URL.Path)
		fmt.Fprint(w, `{"accountId": "abc123", "displayName": "Page Stamper", "email": "bot@example.com"}`)
	}))
	defer srv.Close()

	api := testAPI(t, srv)

	user, err := api.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", user.AccountID)
	assert.Equal(t, "Page Stamper", user.DisplayName)
}
