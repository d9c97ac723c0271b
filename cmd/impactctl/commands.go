package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"impacttrack/config"
	"impacttrack/internal/entities"
	"impacttrack/internal/importer"
	"impacttrack/internal/repository"
	"impacttrack/internal/repository/postgres"
	"impacttrack/internal/usecase"
	"impacttrack/internal/usecase/domain"
	"impacttrack/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "impactctl"
)

func rootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Operate an ImpactTrack deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(migrateCmd(), importCmd(), templateCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down|status",
		Short:     "Apply, roll back or inspect schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			if err := postgres.Migrate(ctx, cfg.Postgres, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", args[0])
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	var opts entities.ImportOptions

	cmd := &cobra.Command{
		Use:       "import participants|vslas <file>",
		Short:     "Import a spreadsheet register into the database",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(entities.ImportParticipants), string(entities.ImportVSLAs)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := entities.ImportKind(args[0])
			if !kind.Valid() {
				return fmt.Errorf("unknown import kind %q", args[0])
			}
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[1], err)
			}
			defer func() { _ = f.Close() }()

			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Logging.Level)
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()

			repo, err := repository.New(ctx, "postgres", log, cfg)
			if err != nil {
				return err
			}
			if err := repo.OnStart(ctx); err != nil {
				return err
			}
			defer func() { _ = repo.OnStop(context.Background()) }()

			uc := usecase.New(log, ctx, repo, cfg.Postgres.QueryTimeout,
				domain.WithImportLimits(importer.Limits{MaxRows: cfg.Import.MaxRows, MaxFileBytes: cfg.Import.MaxFileBytes}))

			var res entities.ImportResult
			if kind == entities.ImportParticipants {
				res, err = uc.ImportParticipants(ctx, f, opts)
			} else {
				res, err = uc.ImportVSLAs(ctx, f, opts)
			}
			if err != nil && res.Kind == "" {
				return err
			}
			// an interrupted import still reports the rows it stored
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(res); encErr != nil {
				return encErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet to read (default: first non-empty sheet)")
	cmd.Flags().StringVar(&opts.Defaults.OrganizationID, "organization-id", "", "Organization for rows without one")
	cmd.Flags().StringVar(&opts.Defaults.ProjectID, "project-id", "", "Project for rows without one")
	cmd.Flags().StringVar(&opts.Defaults.ClusterID, "cluster-id", "", "Cluster applied to every row")
	return cmd
}

func templateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template participants|vslas <out.xlsx>",
		Short: "Write an empty import workbook with the expected headers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := importer.Template(entities.ImportKind(args[0]))
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s template to %s\n", args[0], args[1])
			return nil
		},
	}
}
