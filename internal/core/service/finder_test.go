package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
}

func TestGlobFinder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"Version002.php",
		"Version001.php",
		"README.md",
		"Version.php",
		"2024/01/Version20240101000000.php",
	)

	got, err := GlobFinder{}.FindMigrations(dir, `App\Migrations`)
	if err != nil {
		t.Fatalf("FindMigrations() error = %v", err)
	}
	want := []domain.Migration{
		{Version: "001", Class: `App\Migrations\Version001`},
		{Version: "002", Class: `App\Migrations\Version002`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindMigrations() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecursiveFinder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"2024/02/Version20240201000000.php",
		"2024/01/Version20240101000000.php",
		"2024/01/Version20240102000000.sql",
		"notes/Version.txt",
	)

	tests := []struct {
		name      string
		finder    RecursiveFinder
		namespace string
		want      []domain.Migration
	}{
		{
			name:      "any extension",
			namespace: `\App\`,
			want: []domain.Migration{
				{Version: "20240101000000", Class: `App\Version20240101000000`},
				{Version: "20240102000000", Class: `App\Version20240102000000`},
				{Version: "20240201000000", Class: `App\Version20240201000000`},
			},
		},
		{
			name:   "php only, no namespace",
			finder: RecursiveFinder{Extensions: []string{".php"}},
			want: []domain.Migration{
				{Version: "20240101000000", Class: "Version20240101000000"},
				{Version: "20240201000000", Class: "Version20240201000000"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.finder.FindMigrations(dir, tt.namespace)
			if err != nil {
				t.Fatalf("FindMigrations() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindMigrations() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFinders_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := (GlobFinder{}).FindMigrations(missing, ""); err == nil {
		t.Error("GlobFinder expected error")
	}
	if _, err := (RecursiveFinder{}).FindMigrations(missing, ""); err == nil {
		t.Error("RecursiveFinder expected error")
	}
}
