package confluence

import "encoding/json"

// See https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-users/#api-wiki-rest-api-user-current-get
type User struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	UserKey     string `json:"userKey"`
	AccountID   string `json:"accountId"`
	AccountType string `json:"accountType"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// See https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-space/#api-wiki-rest-api-space-get
type Space struct {
	// The API docs claim space IDs are strings, but v1 serves them as numbers
	ID     json.Number `json:"id,omitempty"`
	Key    string      `json:"key,omitempty"`
	Name   string      `json:"name,omitempty"`
	Type   string      `json:"type,omitempty"`
	Status string      `json:"status,omitempty"`
}

// Content is a single content entity as served by the (v1, but still
// supported) content API:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
//
// The listing endpoint serves the same shape, minus whatever wasn't asked for
// via `expand` -- so Version and the storage body are only populated when you
// request them.
type Content struct {
	ID     string `json:"id,omitempty"`
	Type   string `json:"type,omitempty"`   // page, blogpost
	Status string `json:"status,omitempty"` // current, archived, trashed
	Title  string `json:"title,omitempty"`

	Space   *Space   `json:"space,omitempty"`
	Version *Version `json:"version,omitempty"`

	Body Body `json:"body"`

	Links struct {
		WebUI string `json:"webui"`
		Self  string `json:"self"`
	} `json:"_links"`
}

// Version defines the content version number.
//
// The number is owned by the server: updates must carry the current number
// plus one, or the write is rejected.
type Version struct {
	Number    int    `json:"number"`
	Message   string `json:"message,omitempty"`
	When      string `json:"when,omitempty"`
	MinorEdit bool   `json:"minorEdit,omitempty"`
}

// Body holds the storage information
type Body struct {
	Storage Storage `json:"storage"`
}

// Storage defines the storage information
type Storage struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

// UpdateContentRequest is the payload for PUT /rest/api/content/{id}:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-put
//
// The storage value replaces the page's entire stored content; there is no
// patch or merge semantics on Confluence's end.
type UpdateContentRequest struct {
	Version Version `json:"version"`
	Title   string  `json:"title"`
	Type    string  `json:"type"`
	Body    Body    `json:"body"`
}
