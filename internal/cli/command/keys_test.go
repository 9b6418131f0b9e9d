package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/migrations-go/internal/core/schema"
)

func TestKeys(t *testing.T) {
	out, err := runApp(t, "-o", "json", "keys")
	if err != nil {
		t.Fatalf("keys error = %v", err)
	}

	var got []keyInfo
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	keys := make([]string, len(got))
	for i, k := range got {
		keys[i] = k.Key
		if k.Type == "" || k.Description == "" {
			t.Errorf("key %q has no type or description", k.Key)
		}
	}
	if diff := cmp.Diff(schema.Keys(), keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestKeys_NoConfigurationNeeded(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := runApp(t, "keys")
	if err != nil {
		t.Fatalf("keys error = %v", err)
	}
	if !strings.Contains(out, "KEY") || !strings.Contains(out, "all_or_nothing") {
		t.Errorf("output = %s", out)
	}
}
