// Package httpapi provides the HTTP handlers of the local preview server.
package httpapi

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string      `json:"status"`
	Index  IndexStatus `json:"index"`
}

// IndexStatus describes the site's search index file
type IndexStatus struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}
