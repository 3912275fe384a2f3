package confluence

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedContentHandler serves /wiki/rest/api/content in fixed-size chunks,
// handing out a relative _links.next URL until the listing is exhausted --
// the shape Confluence v1 actually serves.
func pagedContentHandler(t *testing.T, titles []string, pageSize int) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/rest/api/content" {
			http.NotFound(w, r)
			return
		}

		start := 0
		if s := r.URL.Query().Get("start"); s != "" {
			var err error
			start, err = strconv.Atoi(s)
			require.NoError(t, err)
		}

		end := start + pageSize
		if end > len(titles) {
			end = len(titles)
		}

		results := ""
		for i := start; i < end; i++ {
			if i > start {
				results += ","
			}
			results += fmt.Sprintf(`{"id": "%d", "type": "page", "title": "%s"}`, 1000+i, titles[i])
		}

		next := ""
		if end < len(titles) {
			next = fmt.Sprintf(`"next": "/rest/api/content?start=%d&limit=%d"`, end, pageSize)
		}

		fmt.Fprintf(w, `{"results": [%s], "start": %d, "size": %d, "_links": {%s}}`, results, start, end-start, next)
	}
}

func TestListAllContentFollowsNext(t *testing.T) {
	titles := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}

	srv := httptest.NewServer(pagedContentHandler(t, titles, 2))
	defer srv.Close()

	api := testAPI(t, srv)

	contents, err := api.ListAllContent(context.Background(), ContentQuery{SpaceKey: "ENG", Limit: 2})
	require.NoError(t, err)

	// Union of all continuation pages, no duplicates, no omissions, in order.
	require.Len(t, contents, len(titles))
	seen := map[string]bool{}
	for i, content := range contents {
		assert.Equal(t, titles[i], content.Title)
		assert.False(t, seen[content.ID], "duplicate ID %s", content.ID)
		seen[content.ID] = true
	}
}

func TestContentPagerIsLazyAndRestartable(t *testing.T) {
	titles := []string{"Alpha", "Bravo", "Charlie"}

	var requests atomic.Int32
	handler := pagedContentHandler(t, titles, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	defer srv.Close()

	api := testAPI(t, srv)

	pager := api.NewContentPager(ContentQuery{SpaceKey: "ENG", Limit: 2})

	require.True(t, pager.HasNext())
	assert.Equal(t, int32(0), requests.Load(), "pager should not issue requests before Next is called")

	first, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.Results, 2)
	assert.Equal(t, int32(1), requests.Load())
	require.True(t, pager.HasNext())

	second, err := pager.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Results, 1)
	assert.False(t, pager.HasNext())

	_, err = pager.Next(context.Background())
	require.Error(t, err)

	// A fresh pager restarts the walk from the beginning.
	restarted := api.NewContentPager(ContentQuery{SpaceKey: "ENG", Limit: 2})
	again, err := restarted.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Results[0].ID, again.Results[0].ID)
}

func TestListAllContentPropagatesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	api := testAPI(t, srv)

	_, err := api.ListAllContent(context.Background(), ContentQuery{SpaceKey: "ENG"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't list content")
}

func TestListAllSpaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wiki/rest/api/space", r.URL.Path)

		if r.URL.Query().Get("start") == "" {
			assert.Equal(t, "global", r.URL.Query().Get("type"))
			fmt.Fprint(w, `{
				"results": [{"id": 1, "key": "ENG", "name": "Engineering"}],
				"_links": {"next": "/rest/api/space?start=1&limit=1"}
			}`)
			return
		}

		fmt.Fprint(w, `{
			"results": [{"id": 2, "key": "OPS", "name": "Operations"}],
			"_links": {}
		}`)
	}))
	defer srv.Close()

	api := testAPI(t, srv)

	spaces, err := api.ListAllSpaces(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, spaces, 2)
	assert.Equal(t, "Engineering", spaces["ENG"].Name)
	assert.Equal(t, "Operations", spaces["OPS"].Name)
}
