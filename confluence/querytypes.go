package confluence

// ContentQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-get
type ContentQuery struct {
	// Filter the results to content based on...
	SpaceKey string `url:"spaceKey,omitempty"` // the space it lives in.
	Type     string `url:"type,omitempty"`     // its type: page (the default) or blogpost.
	Status   string `url:"status,omitempty"`   // its status: current, trashed, draft, any.
	Title    string `url:"title,omitempty"`    // its title.

	// Properties to fill in on each result, e.g. "version" or "body.storage".
	// Anything not expanded comes back empty.
	Expand []string `url:"expand,omitempty,comma"`

	// 'Start' is used for pagination; you normally don't set it yourself, the
	// server hands it back inside the '_links.next' relative URL.
	Start int `url:"start,omitempty"`
	Limit int `url:"limit,omitempty"` // page limit; default 25
}

// GetContentByIDQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
type GetContentByIDQuery struct {
	Expand  []string `url:"expand,omitempty,comma"` // e.g. body.storage, version, space
	Version int      `url:"version,omitempty"`      // retrieve a previously published version
}

// SpacesQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-space/#api-wiki-rest-api-space-get
type SpacesQuery struct {
	Keys   []string `url:"spaceKey,omitempty"` // filter to particular space keys.
	Type   string   `url:"type,omitempty"`     // their type: "global" or "personal".
	Status string   `url:"status,omitempty"`   // their status: current, archived.

	Start int `url:"start,omitempty"`
	Limit int `url:"limit,omitempty"` // page limit; default 25
}
