package config

import (
	"context"
	"errors"

	"github.com/thomas-vilte/issueseed/internal/config"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetLangCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set-lang",
		Usage: t.GetMessage("config_set_lang_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lang",
				Aliases:  []string{"l"},
				Usage:    t.GetMessage("config_set_lang_flag_usage", 0, nil),
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			lang := command.String("lang")
			if !config.IsSupportedLanguage(lang) {
				return domainErrors.ErrConfigInvalid.
					WithError(errors.New(t.GetMessage("unsupported_language", 0, struct{ Lang string }{lang})))
			}

			if err := updateFile(cfg, func(stored *config.Config) {
				stored.Language = lang
			}); err != nil {
				return err
			}
			cfg.Language = lang

			ui.NewPrinter(command.Root().Writer, cfg.UseEmoji).
				Success(t.GetMessage("language_configured", 0, struct{ Lang string }{lang}))
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newSetRepoCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-repo",
		Usage:     t.GetMessage("config_set_repo_usage", 0, nil),
		ArgsUsage: "owner/repo",
		Action: func(ctx context.Context, command *cli.Command) error {
			target := *cfg
			if err := target.SetRepository(command.Args().First()); err != nil {
				return domainErrors.ErrConfigInvalid.WithError(err)
			}
			if err := updateFile(cfg, func(stored *config.Config) {
				stored.Owner, stored.Repo = target.Owner, target.Repo
			}); err != nil {
				return err
			}
			cfg.Owner, cfg.Repo = target.Owner, target.Repo

			ui.NewPrinter(command.Root().Writer, cfg.UseEmoji).
				Success(t.GetMessage("repository_configured", 0, struct{ Repository string }{cfg.Repository()}))
			return nil
		},
	}
}

// updateFile applies change to the config as stored on disk and saves it.
// cfg carries environment overrides, so it is never written back as a whole.
func updateFile(cfg *config.Config, change func(*config.Config)) error {
	if cfg.PathFile == "" {
		return domainErrors.ErrConfigInvalid.WithError(errors.New("config file path is not set"))
	}

	stored, err := config.LoadConfig(cfg.PathFile)
	if err != nil {
		return domainErrors.ErrConfigInvalid.WithError(err)
	}
	change(stored)
	if err := config.SaveConfig(stored); err != nil {
		return domainErrors.ErrConfigInvalid.WithError(err)
	}
	return nil
}
