package command

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/urfave/cli/v2"
)

const validYAML = `name: Billing Migrations
migrations_namespace: App\Migrations
table_name: migration_versions
column_length: 191
migrations_directory: migrations
migrations:
  - version: "20240101000000"
    class: App\Migrations\Version20240101000000
`

// syncBuffer is a bytes.Buffer safe for the concurrent writes of watch.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// writeProject creates dir/name with content and an empty migrations
// directory next to it, and returns the file path.
func writeProject(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "migrations"), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// runApp runs the application with args and returns what it printed.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runAppContext(context.Background(), t, &syncBuffer{}, args...)
}

func runAppContext(ctx context.Context, t *testing.T, out *syncBuffer, args ...string) (string, error) {
	t.Helper()
	app := App()
	app.Writer = out
	app.ErrWriter = &syncBuffer{}
	err := app.RunContext(ctx, append([]string{"migrations-cli"}, args...))
	return out.String(), err
}

// testContext creates a CLI context with the global flags parsed from args.
func testContext(args ...string) *cli.Context {
	app := &cli.App{
		Name:     "test",
		Flags:    globalFlags(),
		Metadata: map[string]any{},
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	set.Parse(args)

	return cli.NewContext(app, set, nil)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
