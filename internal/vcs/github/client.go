package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/logger"
	"github.com/thomas-vilte/issueseed/internal/models"
	"github.com/thomas-vilte/issueseed/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.Client = (*GitHubClient)(nil)

const (
	defaultWebBaseURL = "https://github.com"

	// tokenType produces the "Authorization: token <TOKEN>" header.
	tokenType = "token"

	labelsPerPage = 100
)

type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	ListLabels(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type GitHubClient struct {
	issuesService IssuesService
	usersService  UsersService
	owner         string
	repo          string
	webBaseURL    string
}

type Option func(*options) error

type options struct {
	apiBaseURL *url.URL
	webBaseURL string
	httpClient *http.Client
}

// WithAPIBaseURL points the client at another API root, such as a GitHub
// Enterprise server or a test server. A trailing slash is added if missing.
func WithAPIBaseURL(raw string) Option {
	return func(o *options) error {
		if raw == "" {
			return nil
		}
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid API base URL %q: %w", raw, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid API base URL %q: scheme and host are required", raw)
		}
		o.apiBaseURL = u
		return nil
	}
}

// WithWebBaseURL sets the site used to build issue list links.
func WithWebBaseURL(raw string) Option {
	return func(o *options) error {
		if raw != "" {
			o.webBaseURL = strings.TrimSuffix(raw, "/")
		}
		return nil
	}
}

// WithHTTPClient replaces the base HTTP client. The token transport wraps it.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) error {
		o.httpClient = c
		return nil
	}
}

func NewGitHubClient(owner, repo, token string, opts ...Option) (*GitHubClient, error) {
	o := &options{webBaseURL: defaultWebBaseURL}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	httpClient := withRawBodies(o.httpClient)
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: tokenType})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)
	if o.apiBaseURL != nil {
		client.BaseURL = o.apiBaseURL
	}

	return &GitHubClient{
		issuesService: client.Issues,
		usersService:  client.Users,
		owner:         owner,
		repo:          repo,
		webBaseURL:    o.webBaseURL,
	}, nil
}

func NewGitHubClientWithServices(
	issuesService IssuesService,
	usersService UsersService,
	owner string,
	repo string,
) *GitHubClient {
	return &GitHubClient{
		issuesService: issuesService,
		usersService:  usersService,
		owner:         owner,
		repo:          repo,
		webBaseURL:    defaultWebBaseURL,
	}
}

func (ghc *GitHubClient) Repository() string {
	return ghc.owner + "/" + ghc.repo
}

func (ghc *GitHubClient) IssuesURL() string {
	return fmt.Sprintf("%s/%s/%s/issues", ghc.webBaseURL, ghc.owner, ghc.repo)
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, spec models.IssueSpec) (*models.CreateIssueResponse, error) {
	log := logger.FromContext(ctx)

	labels := spec.Labels
	if labels == nil {
		labels = []string{}
	}

	issueRequest := &github.IssueRequest{
		Title:  github.Ptr(spec.Title),
		Body:   github.Ptr(spec.Body),
		Labels: &labels,
	}

	log.Debug("sending github issue",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"title", spec.Title,
		"labels_count", len(labels))

	ghIssue, resp, err := ghc.issuesService.Create(ctx, ghc.owner, ghc.repo, issueRequest)
	if resp == nil || resp.Response == nil {
		if err == nil {
			err = errors.New("no response received")
		}
		log.Debug("github issue request failed",
			"error", err,
			"owner", ghc.owner,
			"repo", ghc.repo)
		return nil, fmt.Errorf("error creating issue %q: %w", spec.Title, err)
	}

	out := &models.CreateIssueResponse{StatusCode: resp.StatusCode}

	if resp.StatusCode != http.StatusCreated || err != nil || ghIssue.GetHTMLURL() == "" {
		out.Body = responseBody(resp, err)
		log.Debug("github issue rejected",
			"status", resp.StatusCode,
			"body", out.Body)
		return out, nil
	}

	out.Issue = models.IssueResult{
		ID:     ghIssue.GetID(),
		Number: ghIssue.GetNumber(),
		Title:  ghIssue.GetTitle(),
		URL:    ghIssue.GetHTMLURL(),
	}

	log.Debug("github issue created",
		"issue_number", out.Issue.Number,
		"issue_url", out.Issue.URL)

	return out, nil
}

// responseBody returns the raw body of a rejected response. go-github keeps
// the body readable after an error and rawBodyTransport keeps a copy after a
// successful decode. When both are gone the error text is used.
func responseBody(resp *github.Response, err error) string {
	if rb, ok := resp.Body.(*rawBody); ok {
		if data := bytes.TrimSpace(rb.data); len(data) > 0 {
			return string(data)
		}
	}
	if resp.Body != nil {
		data, readErr := io.ReadAll(resp.Body)
		if readErr == nil && len(data) > 0 {
			return strings.TrimSpace(string(data))
		}
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Message != "" {
		return errResp.Message
	}
	if err != nil {
		return err.Error()
	}
	return http.StatusText(resp.StatusCode)
}

func (ghc *GitHubClient) GetRepoLabels(ctx context.Context) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: labelsPerPage}

	for {
		labels, resp, err := ghc.issuesService.ListLabels(ctx, ghc.owner, ghc.repo, opts)
		if err != nil {
			return nil, ghc.mapError(resp, err, "list labels")
		}
		for _, label := range labels {
			names = append(names, label.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

func (ghc *GitHubClient) CreateLabel(ctx context.Context, name, color string) error {
	label := &github.Label{
		Name:  github.Ptr(name),
		Color: github.Ptr(color),
	}

	_, resp, err := ghc.issuesService.CreateLabel(ctx, ghc.owner, ghc.repo, label)
	if err != nil {
		return ghc.mapError(resp, err, "create label")
	}
	return nil
}

func (ghc *GitHubClient) EnsureLabels(ctx context.Context, labels []string) error {
	log := logger.FromContext(ctx)

	if len(labels) == 0 {
		return nil
	}

	existing, err := ghc.GetRepoLabels(ctx)
	if err != nil {
		return err
	}

	for _, label := range labels {
		if labelExists(existing, label) {
			continue
		}
		if err := ghc.CreateLabel(ctx, label, LabelColor(label)); err != nil {
			if isAlreadyExists(err) {
				log.Debug("label already exists, skipping creation",
					"label", label,
					"owner", ghc.owner,
					"repo", ghc.repo)
				continue
			}
			return domainErrors.ErrCreateLabel.WithError(err).WithContext("label", label)
		}
		log.Info("label created", "label", label)
	}

	return nil
}

func (ghc *GitHubClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		return "", ghc.mapError(resp, err, "get authenticated user")
	}

	if user.Login == nil {
		return "", fmt.Errorf("authenticated user has no login")
	}

	return *user.Login, nil
}

func (ghc *GitHubClient) mapError(resp *github.Response, err error, operation string) error {
	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithError(err).
				WithContext("operation", operation)
		case http.StatusForbidden:
			var rateErr *github.RateLimitError
			if errors.As(err, &rateErr) {
				return domainErrors.ErrGitHubRateLimit.
					WithError(err).
					WithContext("operation", operation)
			}
			return domainErrors.ErrGitHubInsufficientPerms.
				WithError(err).
				WithContext("operation", operation).
				WithContext("repo", ghc.Repository())
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.
				WithError(err).
				WithContext("operation", operation).
				WithContext("repo", ghc.Repository())
		case http.StatusUnprocessableEntity:
			return fmt.Errorf("%s: %w: %w", operation, errUnprocessable, err)
		}
	}
	return fmt.Errorf("error during %s: %w", operation, err)
}

var errUnprocessable = errors.New("unprocessable entity")

func isAlreadyExists(err error) bool {
	return errors.Is(err, errUnprocessable) || strings.Contains(err.Error(), "already_exists")
}

func labelExists(existingLabels []string, target string) bool {
	for _, l := range existingLabels {
		if strings.EqualFold(l, target) {
			return true
		}
	}
	return false
}

// LabelColor derives a stable six-digit hex color from the label name.
func LabelColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(name)))
	return fmt.Sprintf("%06x", h.Sum32()&0xFFFFFF)
}

// rawBody is a response body that remembers its bytes once read.
type rawBody struct {
	*bytes.Reader
	data []byte
}

func (b *rawBody) Close() error {
	return nil
}

// rawBodyTransport buffers every response body so it can still be reported
// after go-github has decoded it.
type rawBodyTransport struct {
	base http.RoundTripper
}

func (t *rawBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.Body == nil {
		return resp, err
	}

	data, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("error reading response body: %w", readErr)
	}

	resp.Body = &rawBody{Reader: bytes.NewReader(data), data: data}
	return resp, nil
}

// withRawBodies returns a copy of c whose transport keeps response bodies.
func withRawBodies(c *http.Client) *http.Client {
	out := &http.Client{}
	if c != nil {
		copied := *c
		out = &copied
	}

	base := out.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	out.Transport = &rawBodyTransport{base: base}
	return out
}
