// Package buildinfo reports the migrations-cli version.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/migrations-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Without ldflags, the module version and VCS revision recorded by the Go
// toolchain are used when available.
package buildinfo
