package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomas-vilte/issueseed/internal/cli/command/check"
	"github.com/thomas-vilte/issueseed/internal/cli/command/completion"
	configcmd "github.com/thomas-vilte/issueseed/internal/cli/command/config"
	"github.com/thomas-vilte/issueseed/internal/cli/command/publish"
	"github.com/thomas-vilte/issueseed/internal/cli/registry"
	cfg "github.com/thomas-vilte/issueseed/internal/config"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/logger"
	"github.com/thomas-vilte/issueseed/internal/ui"
	"github.com/thomas-vilte/issueseed/internal/vcs/github"
	"github.com/thomas-vilte/issueseed/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		stop()
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, domainErrors.ErrConfigInvalid.WithError(fmt.Errorf("could not find the home directory: %w", err))
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, domainErrors.ErrConfigInvalid.WithError(err)
	}
	cfg.ApplyEnv(cfgApp, os.Getenv)

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, domainErrors.NewAppError(domainErrors.TypeInternal, "could not load translations", err)
	}

	clients := github.NewGitHubProviderFactory()

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("publish", publish.NewPublishCommandFactory(clients)); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("preview", publish.NewPreviewCommandFactory()); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("check", check.NewCheckCommandFactory(clients)); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("completion", completion.NewCompletionCommandFactory()); err != nil {
		return nil, nil, err
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:        "issueseed",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag_verbose", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			logger.Debug(ctx, "configuration loaded",
				"config_file", cfgApp.PathFile,
				"repo", cfgApp.Repository())
			return ctx, nil
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}
