package confloader

import (
	"os"
	"path/filepath"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

// ResolvedPath is the outcome of a successful resolution.
type ResolvedPath struct {
	Requested string // Filename as given by the caller
	Absolute  string // Location that was found
}

// Dir returns the directory holding the resolved file.
func (p ResolvedPath) Dir() string {
	return filepath.Dir(p.Absolute)
}

// Resolver maps a filename onto an existing file.
//
// Lookup order for a relative name:
//
//  1. <workDir>/<filename>
//  2. <baseDir>/<filename>
//
// An absolute name is only checked as is.
type Resolver struct {
	workDir string
	baseDir string
}

// NewResolver creates a resolver that searches workDir first and baseDir
// second. Either may be empty.
func NewResolver(workDir, baseDir string) *Resolver {
	return &Resolver{workDir: workDir, baseDir: baseDir}
}

// WorkDir returns the directory searched first.
func (r *Resolver) WorkDir() string {
	return r.workDir
}

// BaseDir returns the fallback directory.
func (r *Resolver) BaseDir() string {
	return r.baseDir
}

// SetBaseDir replaces the fallback directory.
func (r *Resolver) SetBaseDir(dir string) {
	r.baseDir = dir
}

// Candidates returns the locations Resolve checks for filename, in order.
func (r *Resolver) Candidates(filename string) []string {
	if filepath.IsAbs(filename) {
		return []string{filename}
	}

	var out []string
	if r.workDir != "" {
		out = append(out, r.workDir+string(filepath.Separator)+filename)
	}
	if r.baseDir != "" {
		candidate := r.baseDir + string(filepath.Separator) + filename
		if len(out) == 0 || candidate != out[0] {
			out = append(out, candidate)
		}
	}
	if len(out) == 0 {
		out = append(out, filename)
	}
	return out
}

// Resolve returns the first candidate that exists and is a regular file.
// Directories never match.
func (r *Resolver) Resolve(filename string) (ResolvedPath, error) {
	if filename == "" {
		return ResolvedPath{}, domain.FileNotFound(filename)
	}

	for _, candidate := range r.Candidates(filename) {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return ResolvedPath{Requested: filename, Absolute: candidate}, nil
	}
	return ResolvedPath{}, domain.FileNotFound(filename)
}
