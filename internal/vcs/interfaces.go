package vcs

import (
	"context"

	"github.com/thomas-vilte/issueseed/internal/config"
	"github.com/thomas-vilte/issueseed/internal/models"
)

// IssueTracker creates issues in a remote tracker.
type IssueTracker interface {
	// CreateIssue sends one creation request. A response that is not 201 is
	// reported in the returned CreateIssueResponse, not as an error. The error
	// is only set when no response came back at all.
	CreateIssue(ctx context.Context, spec models.IssueSpec) (*models.CreateIssueResponse, error)
	// Repository returns the target as "owner/repo"
	Repository() string
	// IssuesURL returns the web page listing the repository issues
	IssuesURL() string
}

// LabelManager prepares the labels used by a catalog.
type LabelManager interface {
	// EnsureLabels creates every label missing from the repository
	EnsureLabels(ctx context.Context, labels []string) error
}

// UserResolver identifies the owner of the token.
type UserResolver interface {
	// GetAuthenticatedUser returns the login the token belongs to
	GetAuthenticatedUser(ctx context.Context) (string, error)
}

// Client is everything the CLI needs from a tracker.
type Client interface {
	IssueTracker
	LabelManager
	UserResolver
}

// ClientFactory builds a Client for the repository named in cfg.
type ClientFactory interface {
	CreateClient(ctx context.Context, cfg *config.Config) (Client, error)
}
