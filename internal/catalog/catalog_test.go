package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/models"
)

const yamlCatalog = `repository: acme/widgets
issues:
  - title: Project Setup
    body: "Set up the project."
    labels: [setup, high-priority]
  - title: Storage Layer
    body: |
      ## Tasks
      - [ ] SQLite backend
    labels: [storage]
`

const tomlCatalog = `repository = "acme/widgets"

[[issues]]
title = "Project Setup"
body = "Set up the project."
labels = ["setup", "high-priority"]

[[issues]]
title = "Storage Layer"
body = """
## Tasks
- [ ] SQLite backend
"""
labels = ["storage"]
`

const jsonCatalog = `{
  "repository": "acme/widgets",
  "issues": [
    {"title": "Project Setup", "body": "Set up the project.", "labels": ["setup", "high-priority"]},
    {"title": "Storage Layer", "body": "## Tasks\n- [ ] SQLite backend\n", "labels": ["storage"]}
  ]
}`

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	want := []models.IssueSpec{
		{Title: "Project Setup", Body: "Set up the project.", Labels: []string{"setup", "high-priority"}},
		{Title: "Storage Layer", Body: "## Tasks\n- [ ] SQLite backend\n", Labels: []string{"storage"}},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "yaml", file: "issues.yaml", content: yamlCatalog},
		{name: "yml", file: "issues.yml", content: yamlCatalog},
		{name: "toml", file: "issues.toml", content: tomlCatalog},
		{name: "json", file: "issues.json", content: jsonCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalog(t, tt.file, tt.content)

			c, err := Load(path)

			require.NoError(t, err)
			assert.Equal(t, want, c.Issues)
			assert.Equal(t, "acme/widgets", c.Repository)
			assert.Equal(t, path, c.Source)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("should reject unknown extension", func(t *testing.T) {
		_, err := Load(writeCatalog(t, "issues.txt", yamlCatalog))

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrCatalogFormat.Message, appErr.Message)
	})

	t.Run("should report missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.True(t, domainErrors.IsType(err, domainErrors.TypeConfiguration))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		_, err := Load(writeCatalog(t, "issues.yaml", "issues:\n  - title: A\n    body: B\n    assignee: me\n"))
		assert.Error(t, err)

		_, err = Load(writeCatalog(t, "issues.toml", "[[issues]]\ntitle = \"A\"\nbody = \"B\"\nmilestone = 1\n"))
		assert.Error(t, err)

		_, err = Load(writeCatalog(t, "issues.json", `{"issues":[{"title":"A","body":"B","state":"open"}]}`))
		assert.Error(t, err)
	})

	t.Run("should reject malformed documents", func(t *testing.T) {
		_, err := Load(writeCatalog(t, "issues.json", `{"issues": [`))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("should reject an empty catalog", func(t *testing.T) {
		_, err := Parse([]byte("issues: []\n"), FormatYAML)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog has no issues")
	})

	t.Run("should report every bad entry with its index", func(t *testing.T) {
		data := `issues:
  - title: ok
    body: fine
  - title: "  "
    body: fine
  - title: no body
    body: ""
`
		_, err := Parse([]byte(data), FormatYAML)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "issue 2: title is empty")
		assert.Contains(t, err.Error(), "issue 3: body is empty")
		assert.NotContains(t, err.Error(), "issue 1:")
	})

	t.Run("should reject a malformed repository", func(t *testing.T) {
		_, err := Parse([]byte("repository: acme\nissues:\n  - {title: a, body: b}\n"), FormatYAML)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "repository must be owner/repo")
	})
}

func TestNormalizeLabels(t *testing.T) {
	assert.Nil(t, NormalizeLabels(nil))
	assert.Equal(t, []string{"setup", "epic:foundation"},
		NormalizeLabels([]string{" setup", "", "epic:foundation", "setup "}))
}

func TestCatalogLabels(t *testing.T) {
	c := &Catalog{Issues: []models.IssueSpec{
		{Title: "a", Body: "a", Labels: []string{"setup", "docs"}},
		{Title: "b", Body: "b"},
		{Title: "c", Body: "c", Labels: []string{"docs", "storage"}},
	}}

	assert.Equal(t, []string{"setup", "docs", "storage"}, c.Labels())
}

func TestDefault(t *testing.T) {
	c, err := Default()

	require.NoError(t, err)
	require.Len(t, c.Issues, 1)
	assert.Equal(t, "Project Setup and Cargo Configuration", c.Issues[0].Title)
	assert.Equal(t, []string{"setup", "high-priority", "epic:foundation"}, c.Issues[0].Labels)
	assert.Contains(t, c.Issues[0].Body, "## Acceptance Criteria")
	assert.Equal(t, "jessai/code-recall", c.Repository)
	assert.Empty(t, c.Source)
}
