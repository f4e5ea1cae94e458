package publish

import (
	"context"
	"strings"

	"github.com/thomas-vilte/issueseed/internal/catalog"
	"github.com/thomas-vilte/issueseed/internal/config"
	domainErrors "github.com/thomas-vilte/issueseed/internal/errors"
	"github.com/thomas-vilte/issueseed/internal/i18n"
	"github.com/thomas-vilte/issueseed/internal/logger"
	"github.com/urfave/cli/v3"
)

const (
	flagFile  = "file"
	flagOwner = "owner"
	flagRepo  = "repo"
)

func targetFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagFile,
			Aliases: []string{"f"},
			Usage:   t.GetMessage("publish_flag_file", 0, nil),
		},
		&cli.StringFlag{
			Name:  flagOwner,
			Usage: t.GetMessage("publish_flag_owner", 0, nil),
		},
		&cli.StringFlag{
			Name:    flagRepo,
			Aliases: []string{"r"},
			Usage:   t.GetMessage("publish_flag_repo", 0, nil),
		},
	}
}

// loadCatalog picks the catalog from --file, then the configured file, then
// the one built into the binary.
func loadCatalog(ctx context.Context, cmd *cli.Command, cfg *config.Config) (*catalog.Catalog, error) {
	path := cmd.String(flagFile)
	if path == "" {
		path = cfg.CatalogFile
	}

	if path == "" {
		logger.Debug(ctx, "using built-in catalog")
		return catalog.Default()
	}

	logger.Debug(ctx, "loading catalog", "file", path)
	return catalog.Load(path)
}

// resolveTarget returns a copy of cfg pointing at the repository to publish to.
// Flags win over a repository named in a catalog file, which wins over the
// environment and the config file.
func resolveTarget(cmd *cli.Command, cfg *config.Config, c *catalog.Catalog) (*config.Config, error) {
	run := *cfg

	if c.Source != "" && c.Repository != "" {
		if err := run.SetRepository(c.Repository); err != nil {
			return nil, domainErrors.ErrCatalogInvalid.WithError(err)
		}
	}

	if owner := cmd.String(flagOwner); owner != "" {
		run.Owner = owner
	}
	if repo := cmd.String(flagRepo); repo != "" {
		if strings.Contains(repo, "/") {
			if err := run.SetRepository(repo); err != nil {
				return nil, domainErrors.ErrConfigInvalid.WithError(err)
			}
		} else {
			run.Repo = repo
		}
	}

	if err := config.Validate(&run); err != nil {
		return nil, domainErrors.ErrConfigInvalid.WithError(err)
	}

	return &run, nil
}
