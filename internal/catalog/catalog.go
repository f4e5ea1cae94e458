// Package catalog loads the ordered list of issues to publish.
//
// A catalog is a YAML, TOML or JSON document with an "issues" list and an
// optional "repository" (owner/repo) that overrides the configured target.
// The order of the list is the order in which issues are created.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

type Catalog struct {
	Repository string             `json:"repository,omitempty" yaml:"repository,omitempty" toml:"repository,omitempty"`
	Issues     []models.IssueSpec `json:"issues" yaml:"issues" toml:"issues"`

	// Source is the file the catalog came from, empty for the built-in one.
	Source string `json:"-" yaml:"-" toml:"-"`
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", domainErrors.ErrCatalogFormat.WithContext("file", path)
	}
}

// Load reads, parses and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrCatalogRead.WithError(err).WithContext("file", path)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	c.Source = path

	return c, nil
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, FormatYAML)
}

// Parse decodes data, normalizes labels and validates the result.
func Parse(data []byte, format Format) (*Catalog, error) {
	var c Catalog

	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&c)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &c)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown keys: %v", undecoded)
			}
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	default:
		return nil, domainErrors.ErrCatalogFormat.WithContext("format", string(format))
	}
	if err != nil {
		return nil, domainErrors.ErrCatalogRead.WithError(fmt.Errorf("decoding %s: %w", format, err))
	}

	for i := range c.Issues {
		c.Issues[i].Title = strings.TrimSpace(c.Issues[i].Title)
		c.Issues[i].Labels = NormalizeLabels(c.Issues[i].Labels)
	}
	c.Repository = strings.TrimSpace(c.Repository)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate reports every problem in the catalog at once.
func (c *Catalog) Validate() error {
	if len(c.Issues) == 0 {
		return domainErrors.ErrCatalogInvalid.WithError(fmt.Errorf("catalog has no issues"))
	}

	var result *multierror.Error
	for i, issue := range c.Issues {
		if issue.Title == "" {
			result = multierror.Append(result, fmt.Errorf("issue %d: title is empty", i+1))
		}
		if strings.TrimSpace(issue.Body) == "" {
			result = multierror.Append(result, fmt.Errorf("issue %d: body is empty", i+1))
		}
	}

	if c.Repository != "" {
		owner, repo, ok := strings.Cut(c.Repository, "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			result = multierror.Append(result, fmt.Errorf("repository must be owner/repo, got %q", c.Repository))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return domainErrors.ErrCatalogInvalid.WithError(err)
	}
	return nil
}

// Labels returns every label used by the catalog, in first-seen order.
func (c *Catalog) Labels() []string {
	var all []string
	for _, issue := range c.Issues {
		all = append(all, issue.Labels...)
	}
	return NormalizeLabels(all)
}

// NormalizeLabels trims names and drops empty and duplicate entries, keeping order.
func NormalizeLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
