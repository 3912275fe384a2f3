package confluence

// ContentList response type
type ContentList struct {
	Results []Content `json:"results"`

	Start int `json:"start,omitempty"`
	Limit int `json:"limit,omitempty"`
	Size  int `json:"size,omitempty"`

	Links struct {
		// Contains the relative URL for the next set of results.  This
		// property will not be present if there is no additional data
		// available.
		Next string `json:"next"`
	} `json:"_links"`
}

// SpaceList response type
type SpaceList struct {
	Results []Space `json:"results"`

	Links struct {
		// Contains the relative URL for the next set of results.  This
		// property will not be present if there is no additional data
		// available.
		Next string `json:"next"`
	} `json:"_links"`
}
