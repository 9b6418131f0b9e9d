package service

import (
	"os"
	"sort"
	"sync"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

// Defaults applied by NewConfiguration.
const (
	DefaultTableName            = "doctrine_migration_versions"
	DefaultColumnName           = "version"
	DefaultColumnLength         = 255
	DefaultExecutedAtColumnName = "executed_at"
)

// Configuration is the migrations configuration built from a file.
//
// It is safe for concurrent use.
type Configuration struct {
	mu sync.RWMutex

	name                   string
	namespace              string
	tableName              string
	columnName             string
	columnLength           int
	executedAtColumnName   string
	organizeByYearAndMonth bool
	directory              string
	customTemplate         string
	allOrNothing           bool
	migrations             map[string]domain.Migration

	finder Finder
}

var _ domain.Target = (*Configuration)(nil)

// Option configures a Configuration.
type Option func(*Configuration)

// WithFinder sets the finder used by RegisterMigrationsFromDirectory.
func WithFinder(f Finder) Option {
	return func(c *Configuration) {
		c.finder = f
	}
}

// NewConfiguration creates a configuration holding the defaults.
func NewConfiguration(opts ...Option) *Configuration {
	c := &Configuration{
		tableName:            DefaultTableName,
		columnName:           DefaultColumnName,
		columnLength:         DefaultColumnLength,
		executedAtColumnName: DefaultExecutedAtColumnName,
		migrations:           make(map[string]domain.Migration),
		finder:               RecursiveFinder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetMigrationsNamespace sets the namespace prepended to discovered migration classes.
func (c *Configuration) SetMigrationsNamespace(namespace string) {
	c.mu.Lock()
	c.namespace = namespace
	c.mu.Unlock()
}

// SetMigrationsTableName sets the table that tracks executed versions.
func (c *Configuration) SetMigrationsTableName(name string) {
	c.mu.Lock()
	c.tableName = name
	c.mu.Unlock()
}

// SetMigrationsColumnName sets the version column of the tracking table.
func (c *Configuration) SetMigrationsColumnName(name string) {
	c.mu.Lock()
	c.columnName = name
	c.mu.Unlock()
}

// SetMigrationsColumnLength sets the length of the version column.
func (c *Configuration) SetMigrationsColumnLength(length int) {
	c.mu.Lock()
	c.columnLength = length
	c.mu.Unlock()
}

// SetMigrationsExecutedAtColumnName sets the executed-at column of the tracking table.
func (c *Configuration) SetMigrationsExecutedAtColumnName(name string) {
	c.mu.Lock()
	c.executedAtColumnName = name
	c.mu.Unlock()
}

// SetMigrationsAreOrganizedByYearAndMonth enables the year/month directory layout.
func (c *Configuration) SetMigrationsAreOrganizedByYearAndMonth() {
	c.mu.Lock()
	c.organizeByYearAndMonth = true
	c.mu.Unlock()
}

// SetName sets the display name.
func (c *Configuration) SetName(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

// SetMigrationsDirectory sets the directory migrations live in.
func (c *Configuration) SetMigrationsDirectory(dir string) {
	c.mu.Lock()
	c.directory = dir
	c.mu.Unlock()
}

// RegisterMigrationsFromDirectory registers every migration the finder
// reports in dir under the current namespace.
func (c *Configuration) RegisterMigrationsFromDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return domain.MigrationsDirectoryNotFound(dir)
	}

	c.mu.RLock()
	namespace, finder := c.namespace, c.finder
	c.mu.RUnlock()

	found, err := finder.FindMigrations(dir, namespace)
	if err != nil {
		return domain.MigrationsDirectoryNotFound(dir).WithCause(err)
	}
	for _, m := range found {
		if err := c.RegisterMigration(m.Version, m.Class); err != nil {
			return err
		}
	}
	return nil
}

// RegisterMigration registers class under version. A version can only be
// registered once.
func (c *Configuration) RegisterMigration(version, class string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.migrations[version]; exists {
		return domain.DuplicateMigrationVersion(version)
	}
	c.migrations[version] = domain.Migration{Version: version, Class: class}
	return nil
}

// SetCustomTemplate sets the template used to generate migrations.
func (c *Configuration) SetCustomTemplate(path string) {
	c.mu.Lock()
	c.customTemplate = path
	c.mu.Unlock()
}

// SetAllOrNothing sets whether a run wraps all migrations in one transaction.
func (c *Configuration) SetAllOrNothing(enabled bool) {
	c.mu.Lock()
	c.allOrNothing = enabled
	c.mu.Unlock()
}

// Migrations returns the registered migrations sorted by version.
func (c *Configuration) Migrations() []domain.Migration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortedMigrations()
}

func (c *Configuration) sortedMigrations() []domain.Migration {
	out := make([]domain.Migration, 0, len(c.migrations))
	for _, m := range c.migrations {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// HasMigration reports whether version is registered.
func (c *Configuration) HasMigration(version string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.migrations[version]
	return ok
}

// Validate checks that the settings needed to run migrations are present.
func (c *Configuration) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.namespace == "" {
		return domain.MissingSetting("namespace")
	}
	if c.directory == "" {
		return domain.MissingSetting("directory")
	}
	return nil
}

// Snapshot is a point-in-time copy of a Configuration for display.
type Snapshot struct {
	Name                   string             `json:"name" yaml:"name"`
	MigrationsNamespace    string             `json:"migrations_namespace" yaml:"migrations_namespace"`
	TableName              string             `json:"table_name" yaml:"table_name"`
	ColumnName             string             `json:"column_name" yaml:"column_name"`
	ColumnLength           int                `json:"column_length" yaml:"column_length"`
	ExecutedAtColumnName   string             `json:"executed_at_column_name" yaml:"executed_at_column_name"`
	OrganizeByYearAndMonth bool               `json:"organize_by_year_and_month" yaml:"organize_by_year_and_month"`
	MigrationsDirectory    string             `json:"migrations_directory" yaml:"migrations_directory"`
	CustomTemplate         string             `json:"custom_template" yaml:"custom_template"`
	AllOrNothing           bool               `json:"all_or_nothing" yaml:"all_or_nothing"`
	Migrations             []domain.Migration `json:"migrations" yaml:"migrations"`
}

// Snapshot returns the current settings.
func (c *Configuration) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Name:                   c.name,
		MigrationsNamespace:    c.namespace,
		TableName:              c.tableName,
		ColumnName:             c.columnName,
		ColumnLength:           c.columnLength,
		ExecutedAtColumnName:   c.executedAtColumnName,
		OrganizeByYearAndMonth: c.organizeByYearAndMonth,
		MigrationsDirectory:    c.directory,
		CustomTemplate:         c.customTemplate,
		AllOrNothing:           c.allOrNothing,
		Migrations:             c.sortedMigrations(),
	}
}
