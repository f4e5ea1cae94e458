package models

// IssueSpec is the static description of one issue to be created.
type IssueSpec struct {
	Title  string   `json:"title" yaml:"title" toml:"title"`
	Body   string   `json:"body" yaml:"body" toml:"body"`
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty" toml:"labels,omitempty"`
}

// IssueResult is the tracker's representation of a created issue.
// The zero value means the issue was not created.
type IssueResult struct {
	ID     int64
	Number int
	Title  string
	URL    string
}

// Created reports whether the tracker accepted the issue.
func (r IssueResult) Created() bool {
	return r.URL != ""
}

// CreateIssueResponse is what the tracker answered to a single creation request.
type CreateIssueResponse struct {
	// StatusCode is the HTTP status returned by the tracker
	StatusCode int

	// Body is the raw response body, only kept when the issue was not created
	Body string

	// Issue is filled when StatusCode is 201
	Issue IssueResult
}
