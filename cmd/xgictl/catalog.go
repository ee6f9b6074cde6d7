package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xylexgaming/xgi-website/internal/catalog"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository/file"
	"github.com/xylexgaming/xgi-website/internal/repository/postgres"
	"gorm.io/gorm/logger"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [data-dir]",
		Short: "Check the catalog files against their schemas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "data"
			if len(args) == 1 {
				dir = args[0]
			}
			return validateCatalog(cmd.Context(), dir, cmd.OutOrStdout())
		},
	}
}

func validateCatalog(ctx context.Context, dir string, out io.Writer) error {
	validator, err := catalog.NewValidator()
	if err != nil {
		return err
	}
	repo := file.NewCatalogRepository(dir)

	var failed bool
	for _, c := range domain.Collections() {
		raw, err := repo.Load(ctx, c)
		if err == nil {
			err = validator.Check(c, raw)
		}
		if err != nil {
			failed = true
			fmt.Fprintf(out, "FAIL %s: %v\n", repo.Path(c), err)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d records)\n", repo.Path(c), len(raw))
	}
	if failed {
		return fmt.Errorf("catalog in %s is invalid", dir)
	}
	return nil
}

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title>...",
		Short: "Print the detail page slug for a game title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), domain.Slugify(strings.Join(args, " ")))
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var (
		dir     string
		dialect string
		dsn     string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the catalog files into the database catalog source",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}
			if dsn == "" {
				return fmt.Errorf("--dsn or DATABASE_URL is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			store := postgres.NewStore(dialect, dsn, logger.Warn)
			if err := store.Connect(ctx); err != nil {
				return err
			}
			defer store.Close(ctx)

			return importCatalog(ctx, dir, store, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&dir, "data", "data", "directory holding games.json and technology.json")
	cmd.Flags().StringVar(&dialect, "dialect", postgres.DialectPostgres, "postgres or sqlite")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string (default $DATABASE_URL)")
	return cmd
}

type catalogWriter interface {
	ReplaceCatalog(ctx context.Context, collection domain.Collection, records []json.RawMessage) error
}

// importCatalog checks every collection the way the query path does before
// writing any of them, so a rejected file leaves the database untouched.
func importCatalog(ctx context.Context, dir string, store catalogWriter, out io.Writer) error {
	validator, err := catalog.NewValidator()
	if err != nil {
		return err
	}
	repo := file.NewCatalogRepository(dir)

	loaded := make(map[domain.Collection][]json.RawMessage)
	for _, c := range domain.Collections() {
		raw, err := repo.Load(ctx, c)
		if err != nil {
			return err
		}
		if err := validator.Check(c, raw); err != nil {
			return fmt.Errorf("%s: %w", repo.Path(c), err)
		}
		loaded[c] = raw
	}

	for _, c := range domain.Collections() {
		if err := store.ReplaceCatalog(ctx, c, loaded[c]); err != nil {
			return fmt.Errorf("import %s: %w", c, err)
		}
		fmt.Fprintf(out, "imported %d %s records\n", len(loaded[c]), c)
	}
	return nil
}
