// Package confloader locates, parses and applies a migrations configuration file.
//
// A Loader resolves the requested filename against the working directory
// first and a base directory second, decodes it with the Parser chosen for
// its format, and hands the resulting document to the key schema, which
// dispatches every recognized key onto a domain.Target.
//
// Supported formats:
//
//   - YAML (.yml, .yaml)
//   - JSON (.json)
//   - TOML (.toml)
//   - HCL (.hcl), top-level attributes only
//   - XML (.xml), Doctrine element layout
//
// An optional environment overlay lets variables such as
// MIGRATIONS_TABLE_NAME override keys of the file. A Watcher reloads the
// file when its content changes.
package confloader
