package check

import (
	"context"

	"github.com/thomas-vilte/issueseed/internal/config"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/logger"
	"github.com/thomas-vilte/issueseed/internal/ui"
	"github.com/thomas-vilte/issueseed/internal/vcs"
	"github.com/urfave/cli/v3"
)

type CheckCommandFactory struct {
	clients vcs.ClientFactory
}

func NewCheckCommandFactory(clients vcs.ClientFactory) *CheckCommandFactory {
	return &CheckCommandFactory{clients: clients}
}

func (f *CheckCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: t.GetMessage("check_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return f.runCheck(ctx, cmd, t, cfg)
		},
	}
}

func (f *CheckCommandFactory) runCheck(ctx context.Context, cmd *cli.Command, t *i18n.Translations, cfg *config.Config) error {
	if cfg.Token == "" {
		return domainErrors.ErrTokenMissing
	}

	client, err := f.clients.CreateClient(ctx, cfg)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	var login string
	err = ui.WithSpinner(w, t.GetMessage("check_verifying", 0, nil), func() error {
		var err error
		login, err = client.GetAuthenticatedUser(ctx)
		return err
	})
	if err != nil {
		logger.Debug(ctx, "token check failed", "error", err)
		return err
	}

	p := ui.NewPrinter(w, cfg.UseEmoji)
	p.Success(t.GetMessage("check_authenticated", 0, struct{ Login string }{login}))
	p.KeyValue("repository", client.Repository())
	p.KeyValue("token", cfg.MaskedToken())

	return nil
}
