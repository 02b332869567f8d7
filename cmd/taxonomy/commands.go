package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/taxonomy-loader/internal/app"
	"github.com/heartmarshall/taxonomy-loader/internal/config"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// errImportErrored reports an import that completed with errors.
var errImportErrored = errors.New("import finished with errors")

type cli struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "taxonomy",
		Short:         "Load, score and export occupation/skill taxonomies",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.log = app.NewLogger(cfg.Log)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to the YAML config file (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		c.migrateCmd(),
		c.importCmd(),
		c.centralityCmd(),
		c.exportCmd(),
	)
	return root
}

// withApp runs fn against a connected App and always closes it.
func (c *cli) withApp(ctx context.Context, fn func(a *app.App) error) error {
	a, err := app.New(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	defer a.Close(context.WithoutCancel(ctx))
	return fn(a)
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(a *app.App) error {
				return a.Migrate(cmd.Context())
			})
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	var params app.ImportParams

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create a model and load a directory of taxonomy CSV files into it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if params.Dir == "" {
				params.Dir = c.cfg.Import.DataDir
			}
			return c.withApp(cmd.Context(), func(a *app.App) error {
				model, result, err := a.Import(cmd.Context(), params)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "model %s, import process %s\n", model.ID, result.ProcessID)
				for name, stats := range result.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-36s processed=%d success=%d failed=%d\n",
						name, stats.RowsProcessed, stats.RowsSuccess, stats.RowsFailed)
				}
				if result.Errored {
					return errImportErrored
				}
				if result.Warnings {
					fmt.Fprintln(cmd.OutOrStdout(), "completed with warnings")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&params.Dir, "dir", "", "directory containing the CSV files (default import.data_dir)")
	cmd.Flags().StringVar(&params.Name, "name", "", "model name")
	cmd.Flags().StringVar(&params.Locale, "locale", "", "model locale, e.g. en")
	cmd.Flags().StringVar(&params.Description, "description", "", "model description")
	cmd.Flags().StringVar(&params.Version, "version-tag", "", "model version label")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("locale")

	return cmd
}

func (c *cli) centralityCmd() *cobra.Command {
	var (
		modelRaw  string
		targetRaw string
	)

	cmd := &cobra.Command{
		Use:   "centrality",
		Short: "Recompute degree centrality of a model's skills and occupations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modelID, err := uuid.Parse(modelRaw)
			if err != nil {
				return fmt.Errorf("--model: %w", err)
			}
			targets, err := domain.ParseCentralityTargets(targetRaw)
			if err != nil {
				return fmt.Errorf("--target: %w", err)
			}

			return c.withApp(cmd.Context(), func(a *app.App) error {
				results, err := a.Centrality(cmd.Context(), modelID, targets)
				for _, target := range targets {
					if stats, ok := results[target]; ok {
						fmt.Fprintf(cmd.OutOrStdout(), "%-12s counted=%d updated=%d unmatched=%d\n",
							target, stats.RowsProcessed, stats.RowsSuccess, stats.RowsFailed)
					}
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&modelRaw, "model", "", "model id")
	cmd.Flags().StringVar(&targetRaw, "target", "", "comma-separated targets: skills,occupations (default both)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var modelRaw string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a model to one ZIP archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modelID, err := uuid.Parse(modelRaw)
			if err != nil {
				return fmt.Errorf("--model: %w", err)
			}

			return c.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Export(cmd.Context(), modelID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "export process %s\n%s\n", result.ProcessID, result.Location)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&modelRaw, "model", "", "model id")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
