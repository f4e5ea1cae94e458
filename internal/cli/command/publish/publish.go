package publish

import (
	"context"

	"github.com/thomas-vilte/issueseed/internal/cli/command/completion"
	"github.com/thomas-vilte/issueseed/internal/config"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/logger"
	"github.com/thomas-vilte/issueseed/internal/services"
	"github.com/thomas-vilte/issueseed/internal/ui"
	"github.com/thomas-vilte/issueseed/internal/vcs"
	"github.com/urfave/cli/v3"
)

const (
	flagDelay        = "delay"
	flagDryRun       = "dry-run"
	flagStrict       = "strict"
	flagEnsureLabels = "ensure-labels"
)

type PublishCommandFactory struct {
	clients vcs.ClientFactory
	sleeper services.Sleeper
}

func NewPublishCommandFactory(clients vcs.ClientFactory) *PublishCommandFactory {
	return &PublishCommandFactory{clients: clients}
}

// WithSleeper replaces the pause taken between issues.
func (f *PublishCommandFactory) WithSleeper(s services.Sleeper) *PublishCommandFactory {
	f.sleeper = s
	return f
}

func (f *PublishCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	flags := append(targetFlags(t),
		&cli.DurationFlag{
			Name:  flagDelay,
			Usage: t.GetMessage("publish_flag_delay", 0, nil),
			Value: cfg.Delay.Std(),
		},
		&cli.BoolFlag{
			Name:  flagDryRun,
			Usage: t.GetMessage("publish_flag_dry_run", 0, nil),
		},
		&cli.BoolFlag{
			Name:  flagStrict,
			Usage: t.GetMessage("publish_flag_strict", 0, nil),
		},
		&cli.BoolFlag{
			Name:    flagEnsureLabels,
			Aliases: []string{"l"},
			Usage:   t.GetMessage("publish_flag_ensure_labels", 0, nil),
		},
	)

	return &cli.Command{
		Name:          "publish",
		Usage:         t.GetMessage("publish_usage", 0, nil),
		Flags:         flags,
		ShellComplete: completion.FlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return f.publish(ctx, cmd, t, cfg)
		},
	}
}

func (f *PublishCommandFactory) publish(ctx context.Context, cmd *cli.Command, t *i18n.Translations, cfg *config.Config) error {
	c, err := loadCatalog(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	run, err := resolveTarget(cmd, cfg, c)
	if err != nil {
		return err
	}
	run.Delay = config.Duration(cmd.Duration(flagDelay))
	if run.Delay < 0 {
		return domainErrors.ErrConfigInvalid.WithContext("delay", run.Delay.Std().String())
	}

	w := cmd.Root().Writer

	if cmd.Bool(flagDryRun) {
		renderPreview(w, t, run, c)
		return nil
	}

	if run.Token == "" {
		return domainErrors.ErrTokenMissing
	}

	ctx = logger.With(ctx, "repo", run.Repository())

	client, err := f.clients.CreateClient(ctx, run)
	if err != nil {
		return err
	}

	if cmd.Bool(flagEnsureLabels) {
		labels := c.Labels()
		p := ui.NewPrinter(w, run.UseEmoji)
		p.Info(t.GetMessage("labels_ensuring", 0, struct {
			Count      int
			Repository string
		}{len(labels), run.Repository()}))
		if err := client.EnsureLabels(ctx, labels); err != nil {
			return err
		}
		p.Success(t.GetMessage("labels_ready", 0, nil))
		p.Blank()
	}

	opts := []services.PublisherOption{
		services.WithOutput(w, run.UseEmoji),
		services.WithDelay(run.Delay.Std()),
	}
	if f.sleeper != nil {
		opts = append(opts, services.WithSleeper(f.sleeper))
	}

	publisher := services.NewIssuePublisher(client, run.Token, t, opts...)
	report, err := publisher.Run(ctx, c.Issues)
	if err != nil {
		return err
	}

	if cmd.Bool(flagStrict) {
		if ferr := services.FailuresError(report); ferr != nil {
			ui.NewPrinter(w, run.UseEmoji).Warning(t.GetMessage("publish_strict_failed", 0, struct {
				Failed int
				Total  int
			}{len(report.Failures), report.Total}))
			return ferr
		}
	}

	return nil
}
