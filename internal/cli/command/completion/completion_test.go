package completion

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/issueseed/internal/config"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/urfave/cli/v3"
)

func run(t *testing.T, cmd *cli.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:      "issueseed",
		Writer:    &out,
		ErrWriter: io.Discard,
		Commands:  []*cli.Command{cmd},
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"issueseed"}, args...)))
	return out.String()
}

func TestCompletionCommand(t *testing.T) {
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	cmd := NewCompletionCommandFactory().CreateCommand(translations, config.Default())

	t.Run("should print the bash script", func(t *testing.T) {
		output := run(t, cmd, "completion", "bash")
		assert.Contains(t, output, "complete -o bashdefault")
		assert.Contains(t, output, "issueseed")
	})

	t.Run("should print the zsh script", func(t *testing.T) {
		output := run(t, cmd, "completion", "zsh")
		assert.Contains(t, output, "#compdef issueseed")
	})
}

func TestFlagComplete(t *testing.T) {
	var out bytes.Buffer
	cmd := &cli.Command{
		Name:   "publish",
		Writer: &out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}},
			&cli.BoolFlag{Name: "strict"},
		},
	}

	FlagComplete(context.Background(), cmd)

	assert.Equal(t, "--file\n-f\n--strict\n", out.String())
}
