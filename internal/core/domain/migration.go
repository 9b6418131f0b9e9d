package domain

// Document is the normalized result of parsing one configuration file.
//
// Values are scalars (string, integer, float, bool), nil, or lists of
// records such as the entries of the "migrations" key.
type Document map[string]any

// Keys returns the document keys in no particular order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	return keys
}

// Migration is one registered migration.
type Migration struct {
	Version string `json:"version" yaml:"version"`
	Class   string `json:"class" yaml:"class"`
}

// Target receives the settings dispatched from a configuration document.
//
// The registration operations can fail; setters cannot. Defaults are
// the target's responsibility.
type Target interface {
	SetMigrationsNamespace(namespace string)
	SetMigrationsTableName(name string)
	SetMigrationsColumnName(name string)
	SetMigrationsColumnLength(length int)
	SetMigrationsExecutedAtColumnName(name string)
	SetMigrationsAreOrganizedByYearAndMonth()
	SetName(name string)
	SetMigrationsDirectory(dir string)
	RegisterMigrationsFromDirectory(dir string) error
	RegisterMigration(version, class string) error
	SetCustomTemplate(path string)
	SetAllOrNothing(enabled bool)
}
