// Package schema holds the closed set of migrations configuration keys and
// dispatches a parsed document onto a domain.Target.
package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

// Recognized configuration keys.
const (
	KeyMigrationsNamespace  = "migrations_namespace"
	KeyTableName            = "table_name"
	KeyColumnName           = "column_name"
	KeyColumnLength         = "column_length"
	KeyExecutedAtColumnName = "executed_at_column_name"
	KeyOrganizeMigrations   = "organize_migrations"
	KeyName                 = "name"
	KeyMigrationsDirectory  = "migrations_directory"
	KeyMigrations           = "migrations"
	KeyCustomTemplate       = "custom_template"
	KeyAllOrNothing         = "all_or_nothing"
)

// OrganizeByYearAndMonth is the only organize_migrations value that has an effect.
const OrganizeByYearAndMonth = "year_and_month"

const (
	migrationFieldVersion = "version"
	migrationFieldClass   = "class"
)

// Value types as listed by Entries.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeEnum    = "enum"
	TypePath    = "path"
	TypeList    = "list"
)

// Entry describes one recognized key.
type Entry struct {
	Key         string
	Type        string
	Description string

	transform func(key string, value any) ([]Call, error)
}

// entries is iterated in this order on every apply. Order matters: the
// namespace is set before the directory is scanned.
var entries = []Entry{
	{KeyMigrationsNamespace, TypeString, "Namespace used for migration classes", stringOp(OpSetMigrationsNamespace)},
	{KeyTableName, TypeString, "Table that tracks executed versions", stringOp(OpSetMigrationsTableName)},
	{KeyColumnName, TypeString, "Version column of the tracking table", stringOp(OpSetMigrationsColumnName)},
	{KeyColumnLength, TypeInteger, "Length of the version column", columnLength},
	{KeyExecutedAtColumnName, TypeString, "Executed-at column of the tracking table", stringOp(OpSetMigrationsExecutedAtColumnName)},
	{KeyOrganizeMigrations, TypeEnum, `Directory layout; only "year_and_month" is recognized`, organizeMigrations},
	{KeyName, TypeString, "Display name of the configuration", stringOp(OpSetName)},
	{KeyMigrationsDirectory, TypePath, "Directory scanned for migration files", migrationsDirectory},
	{KeyMigrations, TypeList, "Explicit list of {version, class} registrations", migrationList},
	{KeyCustomTemplate, TypePath, "Template used when generating migrations", stringOp(OpSetCustomTemplate)},
	{KeyAllOrNothing, TypeBoolean, "Wrap all migrations of a run in one transaction", allOrNothing},
}

var known = func() map[string]struct{} {
	m := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		m[e.Key] = struct{}{}
	}
	return m
}()

// Entries returns the schema in dispatch order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Keys returns the recognized keys in dispatch order.
func Keys() []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// Known reports whether key belongs to the schema.
func Known(key string) bool {
	_, ok := known[key]
	return ok
}

// Apply validates doc and then dispatches it onto target.
//
// Validation covers every key and value before the first target call, so
// an unknown key or a malformed value leaves target untouched.
func Apply(doc domain.Document, target domain.Target) error {
	calls, err := Plan(doc)
	if err != nil {
		return err
	}
	return Dispatch(calls, target)
}

// Plan validates doc and returns the target calls it maps to, in schema
// order. A nil value on a known key produces no call.
func Plan(doc domain.Document) ([]Call, error) {
	if err := checkKeys(doc); err != nil {
		return nil, err
	}

	var calls []Call
	for _, e := range entries {
		value, ok := doc[e.Key]
		if !ok || value == nil {
			continue
		}
		cs, err := e.transform(e.Key, value)
		if err != nil {
			return nil, err
		}
		calls = append(calls, cs...)
	}
	return calls, nil
}

// checkKeys rejects every key outside the schema. Several unknown keys are
// joined in sorted order, one message per key.
func checkKeys(doc domain.Document) error {
	var unknown []string
	for key := range doc {
		if !Known(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	if len(unknown) == 1 {
		return domain.InvalidConfigurationKey(unknown[0])
	}

	sort.Strings(unknown)
	errs := make([]error, len(unknown))
	for i, key := range unknown {
		errs[i] = domain.InvalidConfigurationKey(key)
	}
	return errors.Join(errs...)
}

// Dispatch invokes the target operation of each call in order and stops
// at the first failing registration.
func Dispatch(calls []Call, target domain.Target) error {
	for _, c := range calls {
		if err := dispatch(c, target); err != nil {
			return fmt.Errorf("apply %s: %w", c.Key, err)
		}
	}
	return nil
}

func dispatch(c Call, t domain.Target) error {
	switch c.Op {
	case OpSetMigrationsNamespace:
		t.SetMigrationsNamespace(c.String)
	case OpSetMigrationsTableName:
		t.SetMigrationsTableName(c.String)
	case OpSetMigrationsColumnName:
		t.SetMigrationsColumnName(c.String)
	case OpSetMigrationsColumnLength:
		t.SetMigrationsColumnLength(c.Int)
	case OpSetMigrationsExecutedAtColumnName:
		t.SetMigrationsExecutedAtColumnName(c.String)
	case OpSetMigrationsAreOrganizedByYearAndMonth:
		t.SetMigrationsAreOrganizedByYearAndMonth()
	case OpSetName:
		t.SetName(c.String)
	case OpSetMigrationsDirectory:
		t.SetMigrationsDirectory(c.String)
	case OpRegisterMigrationsFromDirectory:
		return t.RegisterMigrationsFromDirectory(c.String)
	case OpRegisterMigration:
		return t.RegisterMigration(c.Migration.Version, c.Migration.Class)
	case OpSetCustomTemplate:
		t.SetCustomTemplate(c.String)
	case OpSetAllOrNothing:
		t.SetAllOrNothing(c.Bool)
	default:
		return fmt.Errorf("schema: unknown operation %d", c.Op)
	}
	return nil
}
