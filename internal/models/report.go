package models

// Failure records an issue the tracker refused to create.
type Failure struct {
	// Index is the 1-based position of the issue in the catalog
	Index      int
	Title      string
	StatusCode int
	Body       string
}

// PublishReport summarizes a publishing run.
type PublishReport struct {
	Total    int
	Created  int
	Results  []IssueResult
	Failures []Failure
}

// HasFailures reports whether at least one issue was rejected.
func (r *PublishReport) HasFailures() bool {
	return r != nil && len(r.Failures) > 0
}
