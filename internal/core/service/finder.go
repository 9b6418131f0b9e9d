package service

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

// Finder discovers migrations stored as files in a directory.
type Finder interface {
	FindMigrations(dir, namespace string) ([]domain.Migration, error)
}

// migrationFile matches Version<id>.<ext>.
var migrationFile = regexp.MustCompile(`^Version([A-Za-z0-9_]+)\.([A-Za-z0-9]+)$`)

// GlobFinder looks at the top level of a directory only.
type GlobFinder struct {
	// Extensions restricts matches, e.g. []string{"php"}. Empty matches any.
	Extensions []string
}

// FindMigrations implements Finder.
func (f GlobFinder) FindMigrations(dir, namespace string) ([]domain.Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var found []domain.Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m, ok := match(e.Name(), namespace, f.Extensions); ok {
			found = append(found, m)
		}
	}
	sortMigrations(found)
	return found, nil
}

// RecursiveFinder walks the directory tree, as needed for migrations
// organized by year and month.
type RecursiveFinder struct {
	Extensions []string
}

// FindMigrations implements Finder.
func (f RecursiveFinder) FindMigrations(dir, namespace string) ([]domain.Migration, error) {
	var found []domain.Migration
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if m, ok := match(d.Name(), namespace, f.Extensions); ok {
			found = append(found, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortMigrations(found)
	return found, nil
}

func match(name, namespace string, extensions []string) (domain.Migration, bool) {
	groups := migrationFile.FindStringSubmatch(name)
	if groups == nil {
		return domain.Migration{}, false
	}
	if len(extensions) > 0 && !hasExtension(groups[2], extensions) {
		return domain.Migration{}, false
	}

	class := strings.TrimSuffix(name, "."+groups[2])
	if ns := strings.Trim(namespace, `\`); ns != "" {
		class = ns + `\` + class
	}
	return domain.Migration{Version: groups[1], Class: class}, true
}

func hasExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimPrefix(a, "."), ext) {
			return true
		}
	}
	return false
}

func sortMigrations(ms []domain.Migration) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].Version < ms[j].Version })
}
