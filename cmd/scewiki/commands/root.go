// Package commands is the scewiki command tree.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/scewiki/internal/app"
	"github.com/dmitrijs2005/scewiki/internal/config"
)

var appCtx *app.App

// Execute runs the command named by os.Args until it finishes or the
// process receives SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if appCtx != nil {
		if cerr := appCtx.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scewiki",
		Short:        "SCE Foundation archive shell",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configArgs(cmd.Flags()))
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			appCtx, err = app.NewApp(cmd.Context(), cfg, os.Stderr)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.RunShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "JSON config file")
	pf.StringP("storage", "s", "", "storage backend (sql|document)")
	pf.StringP("driver", "D", "", "database driver (sqlite|pgx)")
	pf.StringP("dsn", "d", "", "database DSN")
	pf.StringP("kv", "k", "", "document kv backend (sql|s3|memory)")
	pf.StringP("log-level", "l", "", "log level (debug|info|warn|error)")

	root.AddCommand(migrateCmd(), exportCmd())
	return root
}

// configArgs turns the flags given on the command line back into the
// short-flag form config.LoadConfig parses, so unset flags keep the values
// from the file and environment.
func configArgs(fs *pflag.FlagSet) []string {
	var args []string
	fs.Visit(func(f *pflag.Flag) {
		if f.Shorthand != "" {
			args = append(args, "-"+f.Shorthand, f.Value.String())
		}
	})
	return args
}
