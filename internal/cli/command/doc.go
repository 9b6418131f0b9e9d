// Package command provides CLI command definitions for migrations-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Application, global flags, configuration lookup
//   - show.go: Print the settings a file produces
//   - validate.go: Check that a file loads and is usable
//   - migrations.go: List registered migrations
//   - keys.go: List recognized configuration keys
//   - watch.go: Reload on change and serve metrics
//
// Commands load the file through confloader onto a fresh
// service.Configuration and render results with the output package.
package command
