package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GetContent fetches a single listing page of content.  Most callers want
// ListAllContent or a ContentPager instead.
func (api *API) GetContent(ctx context.Context, opts ContentQuery) (*ContentList, error) {
	ep, err := api.getContentEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get content endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var contentList ContentList

	if err := json.Unmarshal(body, &contentList); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &contentList, nil
}

// GetContentByID fetches one content entity in full, with whatever fields the
// query asks to expand.
func (api *API) GetContentByID(ctx context.Context, id string, opts GetContentByIDQuery) (*Content, error) {
	ep, err := api.getContentByIDEndpoint(id, opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get single content endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var content Content

	if err := json.Unmarshal(body, &content); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &content, nil
}

// UpdateContent overwrites a content entity's entire stored body.  The
// request must carry the server's current version number plus one, or the
// write is rejected (optimistic concurrency).
func (api *API) UpdateContent(ctx context.Context, id string, update UpdateContentRequest) (*Content, error) {
	ep, err := api.updateContentEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get update endpoint: %w", err)
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't marshal update payload: %w", err)
	}

	body, err := api.do(ctx, http.MethodPut, ep, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't update content %s: %w", id, err)
	}

	var content Content

	if err := json.Unmarshal(body, &content); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &content, nil
}

func (api *API) getSpaces(ctx context.Context, opts SpacesQuery) (*SpaceList, error) {
	ep, err := api.getSpacesEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get spaces endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var spaceList SpaceList

	if err := json.Unmarshal(body, &spaceList); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &spaceList, nil
}

// CurrentUser return current user information
func (api *API) CurrentUser(ctx context.Context) (*User, error) {
	ep, err := api.getCurrentUserEndpoint()
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get current user endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &user, nil
}

// request implements the basic GET request function
func (api *API) request(ctx context.Context, url *url.URL) ([]byte, error) {
	return api.do(ctx, http.MethodGet, url, nil)
}

// do performs one HTTP round trip and maps Confluence's error statuses.  The
// response body is folded into the error on failure, because for rejected
// writes the interesting detail (e.g. which version the server expected) only
// lives there.
func (api *API) do(ctx context.Context, method string, url *url.URL, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// if user & token are not set, do not add authorization header
	if api.username != "" && api.token != "" {
		req.SetBasicAuth(api.username, api.token)
	} else if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("confluence: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusPartialContent, http.StatusNoContent, http.StatusResetContent:
		return body, nil
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("confluence: authentication failed")
	case http.StatusServiceUnavailable:
		return nil, fmt.Errorf("confluence: service is not available: %s", response.Status)
	case http.StatusInternalServerError:
		return nil, fmt.Errorf("confluence: internal server error: %s: %s", response.Status, serverDetail(body))
	case http.StatusConflict:
		return nil, fmt.Errorf("confluence: conflict: %s: %s", response.Status, serverDetail(body))
	case http.StatusBadRequest:
		return nil, fmt.Errorf("confluence: bad request: %s: %s", response.Status, serverDetail(body))
	}

	return nil, fmt.Errorf("confluence: unknown HTTP response status: %s: %s: %s", response.Status, url.String(), serverDetail(body))
}

// serverDetail trims an error payload down to something log-line sized.
func serverDetail(body []byte) string {
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return "(empty response body)"
	}
	if len(detail) > 512 {
		detail = detail[:512] + "..."
	}
	return detail
}
