// Package service provides the in-memory migrations configuration that
// configuration files are applied to.
//
// Configuration implements domain.Target. Migration discovery in a
// directory is delegated to a Finder.
package service
