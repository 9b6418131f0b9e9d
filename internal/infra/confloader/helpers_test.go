package confloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yndnr/migrations-go/internal/core/domain/domaintest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func call(method string, args ...any) domaintest.Call {
	if args == nil {
		args = []any{}
	}
	return domaintest.Call{Method: method, Args: args}
}

// fullCalls is what every full* document below dispatches.
var fullCalls = []domaintest.Call{
	call("SetMigrationsNamespace", "Doctrine"),
	call("SetMigrationsTableName", "migration_version"),
	call("SetMigrationsColumnName", "version_number"),
	call("SetMigrationsColumnLength", 200),
	call("SetMigrationsExecutedAtColumnName", "executed_at"),
	call("SetMigrationsAreOrganizedByYearAndMonth"),
	call("SetName", "Migrations Test"),
	call("SetMigrationsDirectory", "migrations_directory"),
	call("RegisterMigrationsFromDirectory", "migrations_directory"),
	call("RegisterMigration", "001", "Test"),
	call("SetCustomTemplate", "custom_template"),
	call("SetAllOrNothing", true),
}

const fullYAML = `
migrations_namespace: Doctrine
table_name: migration_version
column_name: version_number
column_length: 200
executed_at_column_name: executed_at
organize_migrations: year_and_month
name: Migrations Test
migrations_directory: migrations_directory
migrations:
  - version: "001"
    class: Test
custom_template: custom_template
all_or_nothing: true
`

const fullJSON = `{
  "migrations_namespace": "Doctrine",
  "table_name": "migration_version",
  "column_name": "version_number",
  "column_length": 200,
  "executed_at_column_name": "executed_at",
  "organize_migrations": "year_and_month",
  "name": "Migrations Test",
  "migrations_directory": "migrations_directory",
  "migrations": [{"version": "001", "class": "Test"}],
  "custom_template": "custom_template",
  "all_or_nothing": true
}`

const fullTOML = `
migrations_namespace = "Doctrine"
table_name = "migration_version"
column_name = "version_number"
column_length = 200
executed_at_column_name = "executed_at"
organize_migrations = "year_and_month"
name = "Migrations Test"
migrations_directory = "migrations_directory"
custom_template = "custom_template"
all_or_nothing = true

[[migrations]]
version = "001"
class = "Test"
`

const fullHCL = `
migrations_namespace    = "Doctrine"
table_name              = "migration_version"
column_name             = "version_number"
column_length           = 200
executed_at_column_name = "executed_at"
organize_migrations     = "year_and_month"
name                    = "Migrations Test"
migrations_directory    = "migrations_directory"
migrations = [
  { version = "001", class = "Test" },
]
custom_template = "custom_template"
all_or_nothing  = true
`

const fullXML = `<?xml version="1.0" encoding="UTF-8"?>
<doctrine-migrations xmlns="http://doctrine-project.org/schemas/migrations/configuration"
      xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
    <name>Migrations Test</name>
    <migrations-namespace>Doctrine</migrations-namespace>
    <table name="migration_version" column="version_number" column_length="200" executed_at_column="executed_at"/>
    <organize-migrations>year_and_month</organize-migrations>
    <migrations-directory>migrations_directory</migrations-directory>
    <migrations>
        <migration version="001" class="Test"/>
    </migrations>
    <custom-template>custom_template</custom-template>
    <all-or-nothing>true</all-or-nothing>
</doctrine-migrations>
`
