// Command migrate applies the PostgreSQL schema migrations and scaffolds
// new ones.
//
//	migrate up | down | version | status
//	migrate steps <n>
//	migrate goto <version>
//	migrate force <version>
//	migrate create <name> [description]
//	migrate list
package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"github.com/fiscalmanager/backend/internal/infrastructure/logger"
	"github.com/fiscalmanager/backend/internal/infrastructure/migration"
	"github.com/fiscalmanager/backend/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

type cli struct {
	dir      string
	logLevel string
	log      *zap.Logger
}

// source returns the on-disk directory when --dir is set, otherwise the
// migrations compiled into the binary
func (c *cli) source() fs.FS {
	if c.dir != "" {
		return os.DirFS(c.dir)
	}
	return migrations.FS
}

// withMigrator opens the configured database and runs fn against it
func (c *cli) withMigrator(fn func(*migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver == config.DriverSQLite {
		return fmt.Errorf("sqlite databases are created by the server on startup; migrations target postgres")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m, err := migration.New(db, c.source(), c.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			c.log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	return fn(m)
}

func main() {
	c := &cli{}

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "FiscalManager database migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New(&logger.Config{
				Level:      c.logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync(c.log)
		},
	}
	root.PersistentFlags().StringVar(&c.dir, "dir", "", "read migrations from this directory instead of the embedded set")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withMigrator(func(m *migration.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withMigrator(func(m *migration.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "steps <n>",
			Short: "Apply n migrations (negative n rolls back)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return c.withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
			},
		},
		&cobra.Command{
			Use:   "goto <version>",
			Short: "Migrate up or down to a version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return c.withMigrator(func(m *migration.Migrator) error { return m.GoTo(uint(v)) })
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the version without running migrations (clears a dirty state)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return c.withMigrator(func(m *migration.Migrator) error { return m.Force(v) })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withMigrator(func(m *migration.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Compare the applied version with the newest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withMigrator(func(m *migration.Migrator) error {
					st, err := m.Status(c.source())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d latest=%d dirty=%t pending=%t\n",
						st.Version, st.Latest, st.Dirty, st.Pending())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "create <name> [description]",
			Short: "Scaffold a new up/down migration pair",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := c.dir
				if dir == "" {
					dir = defaultMigrationsDir
				}
				description := ""
				if len(args) > 1 {
					description = args[1]
				}
				mf, err := migration.CreateMigration(dir, args[0], description)
				if err != nil {
					return err
				}
				c.log.Info("Migration created",
					zap.Uint("version", mf.Version),
					zap.String("up_file", mf.UpPath),
					zap.String("down_file", mf.DownPath),
				)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the available migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				entries, err := migration.ListMigrations(c.source())
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintln(cmd.OutOrStdout(), e.FileName())
				}
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
