package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	t.Run("should hide info records at the default level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, false, false)

		l.Info("creating github issue", "title", "Project Setup")
		l.Warn("issue was not created", "status", 422)

		out := buf.String()
		assert.NotContains(t, out, "creating github issue")
		assert.Contains(t, out, "[WARN]  issue was not created status=422")
	})

	t.Run("should show info records when verbose", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, false, true)

		l.With("repo", "acme/widgets").Info("publishing", "count", 3)

		assert.Equal(t, "[INFO]  publishing repo=acme/widgets count=3\n", buf.String())
	})

	t.Run("should prefix grouped attributes", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(&buf, false, true)

		l.WithGroup("issue").Info("created", "number", 7)

		assert.Contains(t, buf.String(), "issue.number=7")
	})

	t.Run("should attach the error through the context helper", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := WithLogger(context.Background(), New(&buf, false, false))

		Error(ctx, "transport failed", errors.New("connection reset"))

		assert.Contains(t, buf.String(), "[ERROR] transport failed error=connection reset")
	})

	t.Run("should fall back to the default logger", func(t *testing.T) {
		assert.Equal(t, slog.Default(), FromContext(context.Background()))
	})
}
