package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/logger"
	"github.com/thomas-vilte/issueseed/internal/models"
	"github.com/thomas-vilte/issueseed/internal/ui"
	"github.com/thomas-vilte/issueseed/internal/vcs"
)

// DefaultDelay is the pause taken after every submission.
const DefaultDelay = time.Second

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// IssuePublisher submits issue specs to a tracker one at a time.
type IssuePublisher struct {
	tracker vcs.IssueTracker
	token   string
	delay   time.Duration
	sleep   Sleeper
	out     *ui.Printer
	trans   *i18n.Translations
}

type PublisherOption func(*IssuePublisher)

// WithDelay sets the pause after each submission. Zero disables it.
func WithDelay(d time.Duration) PublisherOption {
	return func(p *IssuePublisher) {
		p.delay = d
	}
}

// WithSleeper replaces the function used to pause between submissions.
func WithSleeper(s Sleeper) PublisherOption {
	return func(p *IssuePublisher) {
		p.sleep = s
	}
}

// WithOutput sets where progress lines are printed and whether they carry emoji.
func WithOutput(w io.Writer, useEmoji bool) PublisherOption {
	return func(p *IssuePublisher) {
		p.out = ui.NewPrinter(w, useEmoji)
	}
}

func NewIssuePublisher(tracker vcs.IssueTracker, token string, trans *i18n.Translations, opts ...PublisherOption) *IssuePublisher {
	p := &IssuePublisher{
		tracker: tracker,
		token:   token,
		delay:   DefaultDelay,
		sleep:   ContextSleep,
		out:     ui.NewPrinter(nil, true),
		trans:   trans,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit creates one issue. A rejected issue yields the zero IssueResult and
// a nil error. An error means the run cannot go on: the token is missing or
// the tracker could not be reached.
func (p *IssuePublisher) Submit(ctx context.Context, spec models.IssueSpec) (models.IssueResult, error) {
	result, _, err := p.submit(ctx, spec)
	return result, err
}

func (p *IssuePublisher) submit(ctx context.Context, spec models.IssueSpec) (models.IssueResult, *models.Failure, error) {
	log := logger.FromContext(ctx)

	if p.token == "" {
		return models.IssueResult{}, nil, domainErrors.ErrTokenMissing
	}

	p.out.Println(ui.EmojiWorking, p.trans.GetMessage("publish_creating", 0, struct{ Title string }{spec.Title}))

	resp, err := p.tracker.CreateIssue(ctx, spec)
	if err != nil {
		return models.IssueResult{}, nil, err
	}

	if resp.StatusCode == 201 && resp.Issue.Created() {
		p.out.Success(p.trans.GetMessage("publish_created", 0, struct{ URL string }{resp.Issue.URL}))
		log.Info("issue created",
			"title", spec.Title,
			"issue_number", resp.Issue.Number,
			"issue_url", resp.Issue.URL)
		return resp.Issue, nil, nil
	}

	p.out.Error(p.trans.GetMessage("publish_failed", 0, struct {
		Status int
		Body   string
	}{resp.StatusCode, resp.Body}))
	log.Info("issue was not created",
		"title", spec.Title,
		"status", resp.StatusCode,
		"body", resp.Body)

	return models.IssueResult{}, &models.Failure{
		Title:      spec.Title,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}, nil
}

// Run submits specs in order and pauses after each one, the last included.
// Rejected issues are recorded in the report and skipped. A missing token
// stops the run before any request is made.
func (p *IssuePublisher) Run(ctx context.Context, specs []models.IssueSpec) (*models.PublishReport, error) {
	if p.token == "" {
		return nil, domainErrors.ErrTokenMissing
	}

	ctx = logger.With(ctx, "repo", p.tracker.Repository())
	log := logger.FromContext(ctx)

	p.out.Banner(p.trans.GetMessage("publish_banner", 0, nil))
	p.out.Println(ui.EmojiFolder, p.trans.GetMessage("publish_repository", 0, struct{ Repository string }{p.tracker.Repository()}))
	p.out.Blank()

	log.Info("publishing issues", "total", len(specs), "delay", p.delay)

	report := &models.PublishReport{Total: len(specs)}
	for i, spec := range specs {
		result, failure, err := p.submit(ctx, spec)
		if err != nil {
			log.Debug("publishing aborted", "error", err, "index", i+1, "title", spec.Title)
			return report, err
		}

		if result.Created() {
			report.Created++
			report.Results = append(report.Results, result)
		} else if failure != nil {
			failure.Index = i + 1
			report.Failures = append(report.Failures, *failure)
		}

		if err := p.sleep(ctx, p.delay); err != nil {
			return report, err
		}
	}

	p.out.Blank()
	p.out.Success(p.trans.GetMessage("publish_summary", 0, struct{ Count int }{report.Created}))
	p.out.Println(ui.EmojiLink, p.trans.GetMessage("publish_view_at", 0, struct{ URL string }{p.tracker.IssuesURL()}))

	log.Info("publishing finished", "created", report.Created, "total", report.Total)

	return report, nil
}

// FailuresError turns the rejected issues of a report into one error, or nil
// when every issue was created.
func FailuresError(report *models.PublishReport) error {
	if !report.HasFailures() {
		return nil
	}

	var result *multierror.Error
	for _, f := range report.Failures {
		result = multierror.Append(result, domainErrors.ErrRemoteRejection.
			WithError(fmt.Errorf("issue %d %q: status %d", f.Index, f.Title, f.StatusCode)).
			WithContext("body", f.Body))
	}

	return domainErrors.ErrPartialFailure.
		WithError(result.ErrorOrNil()).
		WithContext("failed", len(report.Failures)).
		WithContext("total", report.Total)
}

// ContextSleep waits for d unless ctx is cancelled first.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
