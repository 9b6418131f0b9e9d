package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// ValidateCommand returns the validate command.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check that the configuration loads and names a namespace and directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "syntax-only",
				Usage: "Only check that the file loads",
			},
		},
		Action: validateAction,
	}
}

func validateAction(c *cli.Context) error {
	cfg, loader, err := loadConfiguration(c)
	if err != nil {
		return err
	}
	if !c.Bool("syntax-only") {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	path := loader.File()
	if resolved, ok := loader.Resolved(); ok {
		path = resolved.Absolute
	}
	fmt.Fprintf(writer(c), "✓ Configuration file is valid: %s\n", path)
	return nil
}
