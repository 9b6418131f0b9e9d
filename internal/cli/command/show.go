package command

import (
	"github.com/urfave/cli/v2"
)

// ShowCommand returns the show command.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "Load the configuration and print the resulting settings",
		Action: showAction,
	}
}

func showAction(c *cli.Context) error {
	cfg, _, err := loadConfiguration(c)
	if err != nil {
		return err
	}
	return render(c, cfg.Snapshot())
}
