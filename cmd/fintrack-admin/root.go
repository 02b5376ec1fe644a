package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// admin carries what every subcommand needs once the root command ran.
type admin struct {
	cfg    *config.Config
	logger *log.Logger
	dbPath string
}

func newRootCmd() *cobra.Command {
	a := &admin{}
	root := &cobra.Command{
		Use:           "fintrack-admin",
		Short:         "Maintenance tasks for fintrack",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cli.LoadEnvFile()
			a.cfg = config.Load()
			if a.dbPath == "" {
				a.dbPath = a.cfg.SQLiteDBPath
			}
			a.cfg.SQLiteDBPath = a.dbPath
			// Logs go to stderr so command output stays scriptable.
			a.logger = log.New(log.Config{
				Level:     log.ParseLevel(a.cfg.LogLevel),
				Component: log.ComponentCLI,
				Format:    a.cfg.LogFormat,
				Output:    cmd.ErrOrStderr(),
			})
			return a.cfg.Validate(config.RoleAdmin)
		},
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (default $SQLITE_DB_PATH)")

	root.AddCommand(
		newMigrateCmd(a),
		newCategoriesCmd(a),
		newReportCmd(a),
		newDeleteAccountCmd(a),
		newTokenCmd(a),
		newReconcileCmd(a),
	)
	return root
}

// openRepo opens the configured database; callers close it.
func (a *admin) openRepo() (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", a.dbPath, err)
	}
	return repo, nil
}

func requireUser(userID string) error {
	if userID == "" {
		return errors.New("--user is required")
	}
	return nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
