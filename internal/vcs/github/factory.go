package github

import (
	"context"
	"net/http"

	"github.com/thomas-vilte/issueseed/internal/config"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/logger"
	"github.com/thomas-vilte/issueseed/internal/vcs"
)

var _ vcs.ClientFactory = (*GitHubProviderFactory)(nil)

// GitHubProviderFactory builds GitHub clients from the configuration.
type GitHubProviderFactory struct {
	httpClient *http.Client
}

func NewGitHubProviderFactory() *GitHubProviderFactory {
	return &GitHubProviderFactory{}
}

// NewGitHubProviderFactoryWithHTTPClient makes every client send its
// requests through httpClient.
func NewGitHubProviderFactoryWithHTTPClient(httpClient *http.Client) *GitHubProviderFactory {
	return &GitHubProviderFactory{httpClient: httpClient}
}

func (f *GitHubProviderFactory) CreateClient(ctx context.Context, cfg *config.Config) (vcs.Client, error) {
	if err := f.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	logger.Debug(ctx, "creating github client",
		"repo", cfg.Repository(),
		"api_url", cfg.APIBaseURL)

	opts := []Option{
		WithAPIBaseURL(cfg.APIBaseURL),
		WithWebBaseURL(cfg.WebBaseURL),
	}
	if f.httpClient != nil {
		opts = append(opts, WithHTTPClient(f.httpClient))
	}

	client, err := NewGitHubClient(cfg.Owner, cfg.Repo, cfg.Token, opts...)
	if err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err)
	}
	return client, nil
}

// ValidateConfig checks that cfg names a repository and carries a token.
func (f *GitHubProviderFactory) ValidateConfig(cfg *config.Config) error {
	if cfg.Token == "" {
		return domainErrors.ErrTokenMissing
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return domainErrors.ErrConfigInvalid.WithContext("repository", cfg.Repository())
	}
	return nil
}

func (f *GitHubProviderFactory) Name() string {
	return "github"
}
