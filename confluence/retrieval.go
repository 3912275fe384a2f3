package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ContentPager walks a content listing one response at a time, following the
// server-supplied _links.next reference.  Each call to Next issues exactly
// one request.  A fresh pager restarts the walk from the beginning; the
// accumulation of results is left to the caller.
type ContentPager struct {
	api   *API
	query ContentQuery

	started bool
	next    string
}

func (api *API) NewContentPager(query ContentQuery) *ContentPager {
	return &ContentPager{
		api:   api,
		query: query,
	}
}

// HasNext reports whether the server has (or may have) more results.  It is
// true before the first request has been made.
func (p *ContentPager) HasNext() bool {
	return !p.started || p.next != ""
}

func (p *ContentPager) Next(ctx context.Context) (*ContentList, error) {
	if !p.HasNext() {
		return nil, fmt.Errorf("confluence: pager is exhausted")
	}

	var (
		list *ContentList
		err  error
	)

	if !p.started {
		list, err = p.api.GetContent(ctx, p.query)
	} else {
		list, err = p.api.getContentAt(ctx, p.next)
	}
	if err != nil {
		return nil, err
	}

	p.started = true
	p.next = list.Links.Next

	return list, nil
}

// ListAllContent accumulates every listing page of results for the given
// query.  It terminates when the server stops supplying a _links.next value.
func (api *API) ListAllContent(ctx context.Context, query ContentQuery) ([]Content, error) {
	pager := api.NewContentPager(query)

	contents := []Content{}
	for pager.HasNext() {
		list, err := pager.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't list content: %w", err)
		}
		contents = append(contents, list.Results...)
	}

	return contents, nil
}

// ListAllSpaces returns all spaces visible to the caller, keyed by space key.
func (api *API) ListAllSpaces(ctx context.Context, includePersonal bool) (map[string]Space, error) {
	spaces := map[string]Space{}

	query := SpacesQuery{
		Limit: 25,
	}

	if !includePersonal {
		// Leaving `type` empty returns global and personal spaces both, so we
		// only set it when we _do not_ want everyone's personal space in the
		// listing.
		query.Type = "global"
	}

	next := ""
	for {
		var (
			list *SpaceList
			err  error
		)

		if next == "" {
			list, err = api.getSpaces(ctx, query)
		} else {
			list, err = api.getSpacesAt(ctx, next)
		}
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't list spaces: %w", err)
		}

		for _, space := range list.Results {
			spaces[space.Key] = space
		}

		if list.Links.Next == "" {
			break
		}
		next = list.Links.Next
	}

	return spaces, nil
}

func (api *API) getContentAt(ctx context.Context, next string) (*ContentList, error) {
	body, err := api.followNext(ctx, next)
	if err != nil {
		return nil, err
	}

	var contentList ContentList
	if err := json.Unmarshal(body, &contentList); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &contentList, nil
}

func (api *API) getSpacesAt(ctx context.Context, next string) (*SpaceList, error) {
	body, err := api.followNext(ctx, next)
	if err != nil {
		return nil, err
	}

	var spaceList SpaceList
	if err := json.Unmarshal(body, &spaceList); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &spaceList, nil
}

// followNext requests a server-supplied _links.next reference.  The value is
// relative to the wiki base (e.g. "/rest/api/content?..."), so it is appended
// to the base URI verbatim; resolving it as a URL reference would drop the
// /wiki path prefix.
func (api *API) followNext(ctx context.Context, next string) ([]byte, error) {
	ep, err := url.ParseRequestURI(api.BaseURI.String() + next)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse _links.next: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't follow _links.next: %w", err)
	}

	return body, nil
}
