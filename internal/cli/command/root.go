package command

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/migrations-go/internal/cli/output"
	"github.com/yndnr/migrations-go/internal/core/service"
	"github.com/yndnr/migrations-go/internal/infra/buildinfo"
	"github.com/yndnr/migrations-go/internal/infra/confloader"
	"github.com/yndnr/migrations-go/internal/telemetry/logger"
)

// DefaultFiles are tried in the working directory, in order, when no
// configuration file is given.
var DefaultFiles = []string{
	"migrations.yml",
	"migrations.yaml",
	"migrations.xml",
	"migrations.json",
	"migrations.toml",
	"migrations.hcl",
}

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "migrations-cli",
		Usage:   "Load and inspect migrations configuration files",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ShowCommand(),
			ValidateCommand(),
			MigrationsCommand(),
			KeysCommand(),
			WatchCommand(),
		},
		Before: func(c *cli.Context) error {
			flags := ParseGlobalFlags(c)
			if _, err := output.ParseFormat(flags.Output); err != nil {
				return err
			}
			lg, err := logger.New(logger.Config{
				Level:  flags.LogLevel,
				Format: flags.LogFormat,
				Output: errWriter(c),
			})
			if err != nil {
				return err
			}
			logger.SetDefault(lg)
			c.Context = logger.WithLogger(c.Context, lg)
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "configuration",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default: first of " + strings.Join(DefaultFiles, ", ") + ")",
			EnvVars: []string{"MIGRATIONS_CONFIGURATION"},
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "File format: " + strings.Join(confloader.Formats(), ", ") + " (default: from extension)",
		},
		&cli.StringFlag{
			Name:  "base-dir",
			Usage: "Directory searched when the file is not in the working directory",
		},
		&cli.StringFlag{
			Name:  "env-prefix",
			Usage: "Override keys from environment variables with this prefix (e.g. MIGRATIONS_)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   string(output.FormatTable),
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
			Value: "warn",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
			Value: "text",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Configuration string
	Format        string
	BaseDir       string
	EnvPrefix     string

	Output    string // table, json, yaml
	LogLevel  string
	LogFormat string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Configuration: c.String("configuration"),
		Format:        c.String("format"),
		BaseDir:       c.String("base-dir"),
		EnvPrefix:     c.String("env-prefix"),
		Output:        c.String("output"),
		LogLevel:      c.String("log-level"),
		LogFormat:     c.String("log-format"),
	}
}

// GetLogger retrieves the logger set up by the Before hook.
func GetLogger(c *cli.Context) logger.Logger {
	return logger.FromContext(c.Context)
}

// ConfigurationFile returns the file to load: the --configuration flag,
// or else the first of DefaultFiles present in the working directory.
func ConfigurationFile(flags *GlobalFlags) (string, error) {
	if flags.Configuration != "" {
		return flags.Configuration, nil
	}
	for _, name := range DefaultFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name, nil
		}
	}
	return "", errors.New("no configuration file given and none of " + strings.Join(DefaultFiles, ", ") + " found")
}

// NewLoader builds a loader from the global flags.
func NewLoader(c *cli.Context, opts ...confloader.Option) (*confloader.Loader, error) {
	flags := ParseGlobalFlags(c)

	var parser confloader.Parser
	if flags.Format != "" {
		p, err := confloader.ParserByName(flags.Format)
		if err != nil {
			return nil, err
		}
		parser = p
	}

	all := []confloader.Option{
		confloader.WithBaseDir(flags.BaseDir),
		confloader.WithEnvPrefix(flags.EnvPrefix),
		confloader.WithLogger(GetLogger(c)),
	}
	return confloader.NewLoader(parser, append(all, opts...)...), nil
}

// loadConfiguration loads the selected file onto a fresh Configuration.
func loadConfiguration(c *cli.Context) (*service.Configuration, *confloader.Loader, error) {
	file, err := ConfigurationFile(ParseGlobalFlags(c))
	if err != nil {
		return nil, nil, err
	}
	loader, err := NewLoader(c)
	if err != nil {
		return nil, nil, err
	}
	cfg := service.NewConfiguration()
	if err := loader.Load(file, cfg); err != nil {
		return nil, loader, err
	}
	return cfg, loader, nil
}

// render writes data to the app writer in the --output format.
func render(c *cli.Context, data any) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(writer(c), data)
}

func outputFormat(c *cli.Context) output.Format {
	format, _ := output.ParseFormat(c.String("output"))
	return format
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}
