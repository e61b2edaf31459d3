package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"propertybook/internal/app"
	"propertybook/internal/config"
	"propertybook/pkg/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "propertybook",
		Short:         "Track persons, sellers, bidders, properties, bids and meetings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	backupCmd := newBackupCmd(opts)
	backupCmd.AddCommand(newBackupListCmd(opts))
	root.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newExportCmd(opts),
		backupCmd,
		newRestoreCmd(opts),
	)
	return root
}

// open loads configuration and builds the app. Callers must Close it.
func (o *rootOptions) open(cmd *cobra.Command) (*app.App, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	logger := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:     cfg.Log.Level,
		AddSource: cfg.Log.AddSource,
		NoColor:   cfg.Log.NoColor,
	})
	slog.SetDefault(logger)
	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func withApp(opts *rootOptions, fn func(cmd *cobra.Command, args []string, a *app.App, logger *slog.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, logger, err := opts.open(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(cmd.Context()); err != nil {
				logger.Error("close failed", "error", err)
			}
		}()
		return fn(cmd, args, a, logger)
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and autosave changes",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, a *app.App, _ *slog.Logger) error {
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		}),
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored state with sample data",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, a *app.App, logger *slog.Logger) error {
			if err := a.Seed(cmd.Context(), force); err != nil {
				return err
			}
			logger.Info("sample data stored")
			fmt.Fprintln(cmd.OutOrStdout(), "Sample data stored.")
			return nil
		}),
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace existing data")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored state as JSON",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, a *app.App, _ *slog.Logger) error {
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(a.Model().ExportState())
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func newBackupCmd(opts *rootOptions) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the stored state to the backup store",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, a *app.App, _ *slog.Logger) error {
			ctx := cmd.Context()
			if err := a.Load(ctx); err != nil {
				return err
			}
			svc, err := a.Backups(ctx)
			if err != nil {
				return err
			}
			info, err := svc.Backup(ctx, a.Model().ExportState(), a.Model().Revision())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written: %s (%d bytes)\n", info.Key, info.Size)
			if keep > 0 {
				removed, err := svc.Prune(ctx, keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d old backups\n", removed)
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "prune all but the newest N backups (0 keeps everything)")
	return cmd
}

func newBackupListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, _ []string, a *app.App, _ *slog.Logger) error {
			svc, err := a.Backups(cmd.Context())
			if err != nil {
				return err
			}
			infos, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", info.Key, info.Size, info.LastModified.Format("2006-01-02 15:04:05"))
			}
			return nil
		}),
	}
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [key]",
		Short: "Replace the stored state with a backup (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, a *app.App, _ *slog.Logger) error {
			ctx := cmd.Context()
			svc, err := a.Backups(ctx)
			if err != nil {
				return err
			}
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			restored, res, err := svc.Restore(ctx, a.Model(), key)
			if err != nil {
				return err
			}
			if err := a.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", restored)
			for _, w := range res.Warnings() {
				fmt.Fprintln(cmd.OutOrStdout(), "warning:", w)
			}
			return nil
		}),
	}
}
