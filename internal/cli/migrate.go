package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/migrations"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionVersion = "version"
)

// MigrateCommand applies, rolls back or reports schema migrations.
type MigrateCommand struct {
	Action string
	Steps  int // down only; 0 rolls back everything

	Database config.Database
}

// NewMigrateCommand creates a MigrateCommand using the database settings
// from the environment; flags may override them.
func NewMigrateCommand(cfg config.Database) *MigrateCommand {
	return &MigrateCommand{Database: cfg}
}

// ParseFlags parses command line flags and the action argument.
func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)

	driver := fs.String("driver", string(cmd.Database.Driver), "Database driver: sqlite or postgres")
	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the SQLite database file")
	fs.StringVar(&cmd.Database.URL, "url", cmd.Database.URL, "PostgreSQL connection URL")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [options] up|down [steps]|version\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Manage the database schema.\n\n")
		fmt.Fprintf(os.Stderr, "  up              Apply all pending migrations\n")
		fmt.Fprintf(os.Stderr, "  down [steps]    Roll back the given number of migrations (all if omitted)\n")
		fmt.Fprintf(os.Stderr, "  version         Print the current schema version\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.Database.Driver = config.DatabaseDriver(*driver)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("missing migrate action")
	}

	cmd.Action = rest[0]
	switch cmd.Action {
	case ActionUp, ActionVersion:
		if len(rest) > 1 {
			return fmt.Errorf("%s takes no arguments", cmd.Action)
		}
	case ActionDown:
		if len(rest) > 2 {
			return fmt.Errorf("down takes at most one argument")
		}
		if len(rest) == 2 {
			steps, err := strconv.Atoi(rest[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", rest[1])
			}
			cmd.Steps = steps
		}
	default:
		fs.Usage()
		return fmt.Errorf("unknown migrate action %q", cmd.Action)
	}

	return nil
}

// Run executes the migrate command.
func (cmd *MigrateCommand) Run() error {
	dsn, err := database.DSN(cmd.Database)
	if err != nil {
		return err
	}

	m, err := migrations.New(cmd.Database.Driver, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd.Action {
	case ActionUp:
		if err := m.Up(); err != nil {
			return err
		}
	case ActionDown:
		if err := m.Down(cmd.Steps); err != nil {
			return err
		}
	}

	version, dirty, ok, err := m.Version()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("schema version: none")
		return nil
	}
	fmt.Printf("schema version: %d", version)
	if dirty {
		fmt.Print(" (dirty)")
	}
	fmt.Println()
	return nil
}
