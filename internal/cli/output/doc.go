// Package output renders command results for migrations-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned text tables
//   - json.go: indented JSON
//   - yaml.go: YAML via gopkg.in/yaml.v3
//
// Tables are for people; json and yaml are stable for scripts and use the
// same field names as the configuration keys.
package output
