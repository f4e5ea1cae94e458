package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if body, ok := e.Context["body"].(string); ok && body != "" {
			msg += fmt.Sprintf(" - %s", body)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Type == t {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeConfiguration, "GITHUB_TOKEN environment variable not set", nil).
			WithSuggestion("Create a token at: https://github.com/settings/tokens\nThen run: export GITHUB_TOKEN=<token>")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration is not valid", nil).
				WithSuggestion("Review your settings with: issueseed config show")

	ErrCatalogRead = NewAppError(TypeConfiguration, "Failed to read issue catalog", nil).
			WithSuggestion("Check the file exists and is readable: --file <path>")

	ErrCatalogInvalid = NewAppError(TypeConfiguration, "Issue catalog is not valid", nil).
				WithSuggestion("Every issue needs a non-empty title and body")

	ErrCatalogFormat = NewAppError(TypeConfiguration, "Unsupported catalog format", nil).
				WithSuggestion("Use a .yaml, .yml, .toml or .json file")
)

// VCS errors
var (
	ErrRemoteRejection = NewAppError(TypeVCS, "issue was not created", nil)

	ErrPartialFailure = NewAppError(TypeVCS, "some issues were not created", nil).
				WithSuggestion("Inspect the failures above and run again with a catalog holding only those issues")

	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository owner/name and access permissions")

	ErrCreateLabel = NewAppError(TypeVCS, "failed to create label", nil).
			WithSuggestion("Check your GitHub token has 'repo' permissions")
)

// GitHub specific errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs the 'repo' scope.\nRegenerate at: https://github.com/settings/tokens")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or raise the delay with --delay")
)
