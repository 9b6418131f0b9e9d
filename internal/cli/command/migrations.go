package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/migrations-go/internal/cli/output"
)

// MigrationsCommand returns the migrations command.
func MigrationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "migrations",
		Aliases: []string{"ls"},
		Usage:   "List migrations registered by the configuration",
		Action:  migrationsAction,
	}
}

func migrationsAction(c *cli.Context) error {
	cfg, _, err := loadConfiguration(c)
	if err != nil {
		return err
	}

	migrations := cfg.Migrations()
	if len(migrations) == 0 && outputFormat(c) == output.FormatTable {
		fmt.Fprintln(writer(c), "No migrations registered.")
		return nil
	}
	return render(c, migrations)
}
