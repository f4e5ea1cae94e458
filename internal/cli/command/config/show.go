package config

import (
	"context"

	"github.com/thomas-vilte/issueseed/internal/config"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			p := ui.NewPrinter(command.Root().Writer, cfg.UseEmoji)
			notSet := t.GetMessage("config_not_set", 0, nil)

			p.Println(ui.EmojiList, t.GetMessage("config_show_header", 0, nil))
			p.Separator()

			p.KeyValue("repository", cfg.Repository())
			p.KeyValue("api_base_url", cfg.APIBaseURL)
			p.KeyValue("web_base_url", cfg.WebBaseURL)
			p.KeyValue("delay", cfg.Delay.Std().String())
			p.KeyValue("language", cfg.Language)
			p.KeyValue("use_emoji", boolString(cfg.UseEmoji))

			catalogFile := cfg.CatalogFile
			if catalogFile == "" {
				catalogFile = t.GetMessage("config_builtin_catalog", 0, nil)
			}
			p.KeyValue("catalog_file", catalogFile)

			token := cfg.MaskedToken()
			if token == "" {
				token = notSet
			}
			p.KeyValue("token", token)

			pathFile := cfg.PathFile
			if pathFile == "" {
				pathFile = notSet
			}
			p.KeyValue("config_file", pathFile)

			return nil
		},
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
