// Package main provides the entry point for migrations-cli.
//
// The CLI loads a migrations configuration file (YAML, XML, JSON, TOML or
// HCL) and reports what it configures:
//
//   - show: the resulting settings
//   - validate: whether the file loads and is usable
//   - migrations: the registered migrations
//   - keys: the recognized configuration keys
//   - watch: reload on change, with Prometheus metrics
//
// Usage:
//
//	migrations-cli [global flags] command [flags]
//	migrations-cli -c config/migrations.yml show -o json
//	migrations-cli watch --metrics-addr :9090
package main
