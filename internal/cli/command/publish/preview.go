package publish

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/issueseed/internal/catalog"
	"github.com/thomas-vilte/issueseed/internal/cli/command/completion"
	"github.com/thomas-vilte/issueseed/internal/config"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/ui"
	"github.com/urfave/cli/v3"
)

type PreviewCommandFactory struct{}

func NewPreviewCommandFactory() *PreviewCommandFactory {
	return &PreviewCommandFactory{}
}

// CreateCommand builds "preview". It never talks to GitHub and needs no token.
func (f *PreviewCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "preview",
		Aliases:       []string{"p"},
		Usage:         t.GetMessage("preview_usage", 0, nil),
		Flags:         targetFlags(t),
		ShellComplete: completion.FlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := loadCatalog(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			run, err := resolveTarget(cmd, cfg, c)
			if err != nil {
				return err
			}

			renderPreview(cmd.Root().Writer, t, run, c)
			return nil
		},
	}
}

func renderPreview(w io.Writer, t *i18n.Translations, cfg *config.Config, c *catalog.Catalog) {
	p := ui.NewPrinter(w, cfg.UseEmoji)

	p.Println(ui.EmojiList, t.GetMessage("preview_header", 0, struct{ Repository string }{cfg.Repository()}))
	p.Separator()

	for i, spec := range c.Issues {
		p.Println("", ui.Accent.Sprintf("%d. %s", i+1, spec.Title))

		labels := t.GetMessage("preview_no_labels", 0, nil)
		if len(spec.Labels) > 0 {
			labels = strings.Join(spec.Labels, ", ")
		}
		p.KeyValue(t.GetMessage("preview_labels", 0, nil), labels)
		p.Blank()

		for _, line := range strings.Split(strings.TrimRight(spec.Body, "\n"), "\n") {
			_, _ = fmt.Fprintf(w, "   %s\n", line)
		}
		p.Separator()
	}

	p.Info(t.GetMessage("preview_total", 0, struct{ Count int }{len(c.Issues)}))
}
