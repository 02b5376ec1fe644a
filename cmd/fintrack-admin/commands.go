package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/auth"
	"fintrack/internal/backend"
	"fintrack/internal/core"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/worker"
)

func newMigrateCmd(a *admin) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := storage.RunMigrations(a.dbPath); err != nil {
				return err
			}
			version, dirty, err := storage.MigrationVersion(a.dbPath)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
			return nil
		},
	}
}

func newCategoriesCmd(a *admin) *cobra.Command {
	var (
		file string
		seed bool
	)
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the expense category catalog, optionally storing it",
		Long: `Show the expense category catalog.

With --file the catalog is read from a YAML document shaped like the
built-in one; with --seed it replaces the stored category table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := core.DefaultCatalog()
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read catalog: %w", err)
				}
				if catalog, err = core.LoadCatalog(data); err != nil {
					return err
				}
			}

			infos := catalog.All()
			if seed {
				repo, err := a.openRepo()
				if err != nil {
					return err
				}
				defer repo.Close()
				if err := repo.SeedCategories(cmd.Context(), catalog); err != nil {
					return err
				}
				if infos, err = repo.ListCategories(cmd.Context()); err != nil {
					return err
				}
				a.logger.Info("Seeded categories", "count", len(infos))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printf(tw, "KEY\tNAME\tANNUAL\tSUBCATEGORIES\n")
			for _, info := range infos {
				printf(tw, "%s\t%s\t%t\t%s\n", info.Key, info.Name, info.Annual, strings.Join(info.Subcategories, ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to use instead of the built-in one")
	cmd.Flags().BoolVar(&seed, "seed", false, "replace the stored categories with the catalog")
	return cmd
}

func newReportCmd(a *admin) *cobra.Command {
	var userID, period, date string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the analytics report of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(userID); err != nil {
				return err
			}
			var ref core.Date
			if date != "" {
				var err error
				if ref, err = core.ParseDate(date); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}

			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			deps := services.Deps{Clock: services.NewClock(a.cfg.Location()), Logger: a.logger}
			report, err := services.NewAnalyticsService(repo, nil, deps).Report(cmd.Context(), userID, core.ParsePeriod(period), ref)
			if err != nil {
				return err
			}
			profile, err := services.NewAccountService(repo, deps).Profile(cmd.Context(), userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			money := func(m core.Money) string { return core.FormatMoney(m, profile.Currency) }
			printf(out, "%s report for %s (reference %s)\n", report.Period, userID, report.Reference)
			printf(out, "Income:        %s\n", money(report.TotalIncome))
			printf(out, "Expenses:      %s\n", money(report.TotalExpenses))
			printf(out, "Savings:       %s\n", money(report.Savings))
			printf(out, "Savings rate:  %d%%\n", report.SavingsRate)
			for _, c := range report.Breakdown() {
				printf(out, "  %-20s %s\n", c.Name, money(c.Amount))
			}
			for _, in := range report.Insights {
				printf(out, "* %s: %s\n", in.Title, in.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&period, "period", string(core.PeriodMonthly), "monthly or yearly")
	cmd.Flags().StringVar(&date, "date", "", "reference date YYYY-MM-DD (default today)")
	return cmd
}

func newDeleteAccountCmd(a *admin) *cobra.Command {
	var (
		userID string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete a user's profile and every record they own",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(userID); err != nil {
				return err
			}
			if !yes {
				return errors.New("refusing to delete without --yes")
			}

			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			deps := services.Deps{Clock: services.NewClock(a.cfg.Location()), Logger: a.logger}
			client, err := backend.ConnectAMQP(a.cfg, a.logger)
			if err != nil {
				return err
			}
			if client != nil {
				defer client.Close()
				deps.Publisher = client
			}

			if err := services.NewAccountService(repo, deps).DeleteAccount(cmd.Context(), userID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "deleted account %s\n", userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func newTokenCmd(a *admin) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(userID); err != nil {
				return err
			}
			if a.cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			tok, err := auth.NewVerifier(a.cfg.JWTSecret, a.cfg.JWTIssuer).Issue(userID, ttl)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n", tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (token subject)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func newReconcileCmd(a *admin) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Bring a user's exported ledger rows in line with the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(userID); err != nil {
				return err
			}
			sinkCfg, err := backend.FromAppConfig(a.cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			sink, err := backend.NewFactory(a.logger).CreateSink(ctx, sinkCfg)
			if err != nil {
				return err
			}
			if sink.Cleanup != nil {
				defer sink.Cleanup()
			}

			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			res, err := worker.NewExportWorker(repo, sink.Sink, a.logger).Reconcile(ctx, userID)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "appended %d, removed %d\n", res.Appended, res.Removed)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	return cmd
}
