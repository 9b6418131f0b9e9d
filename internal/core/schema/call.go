package schema

import "github.com/yndnr/migrations-go/internal/core/domain"

// Operation names one domain.Target operation.
type Operation uint8

// Target operations, one per domain.Target method.
const (
	OpSetMigrationsNamespace Operation = iota + 1
	OpSetMigrationsTableName
	OpSetMigrationsColumnName
	OpSetMigrationsColumnLength
	OpSetMigrationsExecutedAtColumnName
	OpSetMigrationsAreOrganizedByYearAndMonth
	OpSetName
	OpSetMigrationsDirectory
	OpRegisterMigrationsFromDirectory
	OpRegisterMigration
	OpSetCustomTemplate
	OpSetAllOrNothing
)

var operationNames = map[Operation]string{
	OpSetMigrationsNamespace:                  "SetMigrationsNamespace",
	OpSetMigrationsTableName:                  "SetMigrationsTableName",
	OpSetMigrationsColumnName:                 "SetMigrationsColumnName",
	OpSetMigrationsColumnLength:               "SetMigrationsColumnLength",
	OpSetMigrationsExecutedAtColumnName:       "SetMigrationsExecutedAtColumnName",
	OpSetMigrationsAreOrganizedByYearAndMonth: "SetMigrationsAreOrganizedByYearAndMonth",
	OpSetName:                                 "SetName",
	OpSetMigrationsDirectory:                  "SetMigrationsDirectory",
	OpRegisterMigrationsFromDirectory:         "RegisterMigrationsFromDirectory",
	OpRegisterMigration:                       "RegisterMigration",
	OpSetCustomTemplate:                       "SetCustomTemplate",
	OpSetAllOrNothing:                         "SetAllOrNothing",
}

// String returns the target method name.
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "Unknown"
}

// Call is one planned target invocation. Only the argument field matching
// Op is set.
type Call struct {
	Key       string
	Op        Operation
	String    string
	Int       int
	Bool      bool
	Migration domain.Migration
}
