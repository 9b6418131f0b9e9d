package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_Render(t *testing.T) {
	table := &Table{}
	table.SetHeaders("VERSION", "CLASS")
	table.AddRow("20240101000000", `App\Version20240101000000`)
	table.AddRow("2", `App\Version2`)

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "VERSION         CLASS\n" +
		"20240101000000  App\\Version20240101000000\n" +
		"2               App\\Version2\n"
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestTable_NoHeaders(t *testing.T) {
	table := &Table{Headers: []string{"KEY"}}
	table.AddRow("name")

	var buf bytes.Buffer
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "name" {
		t.Errorf("Format() = %q, want %q", got, "name")
	}
}

func TestFormatValue(t *testing.T) {
	var nilPtr *string
	tests := []struct {
		name string
		data any
		want string
	}{
		{"empty string", sample{}, "name -"},
		{"nil pointer", struct{ P *string }{nilPtr}, "P -"},
		{"bool", struct{ B bool }{true}, "B true"},
		{"map", struct{ M map[string]int }{map[string]int{"a": 1}}, "M {1 keys}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TableFormatter{NoHeaders: true}).Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			first := strings.Fields(strings.SplitN(buf.String(), "\n", 2)[0])
			if got := strings.Join(first, " "); got != tt.want {
				t.Errorf("first row = %q, want %q", got, tt.want)
			}
		})
	}
}
