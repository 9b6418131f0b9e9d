package command

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := writeProject(t, dir, "migrations.yml", validYAML)
	noNamespace := writeProject(t, dir, "partial.json", `{"migrations_directory": "migrations"}`)
	noDirectory := writeProject(t, dir, "nodir.toml", `migrations_namespace = 'App\Migrations'`)

	tests := []struct {
		name    string
		args    []string
		wantOut string
		wantErr string
	}{
		{
			name:    "valid",
			args:    []string{"-c", valid, "validate"},
			wantOut: "✓ Configuration file is valid: " + valid,
		},
		{
			name:    "missing namespace",
			args:    []string{"-c", noNamespace, "validate"},
			wantErr: "Migrations namespace must be configured in order to use migrations.",
		},
		{
			name:    "missing directory",
			args:    []string{"-c", noDirectory, "validate"},
			wantErr: "Migrations directory must be configured in order to use migrations.",
		},
		{
			name:    "syntax only",
			args:    []string{"-c", noNamespace, "validate", "--syntax-only"},
			wantOut: "✓ Configuration file is valid: " + noNamespace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("validate error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate error = %v", err)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output = %q, want it to contain %q", out, tt.wantOut)
			}
		})
	}
}
