package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/migrations-go/internal/core/schema"
)

type keyInfo struct {
	Key         string `json:"key" yaml:"key"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:   "keys",
		Usage:  "List the recognized configuration keys in the order they are applied",
		Action: keysAction,
	}
}

func keysAction(c *cli.Context) error {
	entries := schema.Entries()
	keys := make([]keyInfo, len(entries))
	for i, e := range entries {
		keys[i] = keyInfo{Key: e.Key, Type: e.Type, Description: e.Description}
	}
	return render(c, keys)
}
