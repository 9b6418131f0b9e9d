// Package domain defines the core domain models for the migrations tool.
//
// Domain models are plain values without IO dependencies. This package
// contains:
//
//   - Document: the normalized key/value form of a configuration file
//   - Migration: a version and the class implementing it
//   - Target: the operations a configuration document is dispatched to
//   - Errors: coded domain errors with CLI-ready messages
package domain
