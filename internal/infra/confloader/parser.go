package confloader

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

// Parser decodes raw file content into a document.
//
// The method set is the read half of koanf.Parser, so koanf parsers are
// used directly.
type Parser interface {
	Unmarshal(data []byte) (map[string]any, error)
}

// Supported format names.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatHCL  = "hcl"
	FormatXML  = "xml"
)

var parsers = map[string]func() Parser{
	FormatYAML: func() Parser { return yaml.Parser() },
	FormatJSON: func() Parser { return json.Parser() },
	FormatTOML: func() Parser { return TOMLParser() },
	FormatHCL:  func() Parser { return HCLParser() },
	FormatXML:  func() Parser { return XMLParser() },
}

var extensions = map[string]string{
	".yml":  FormatYAML,
	".yaml": FormatYAML,
	".json": FormatJSON,
	".toml": FormatTOML,
	".hcl":  FormatHCL,
	".xml":  FormatXML,
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(parsers))
	for name := range parsers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FormatOf returns the format name for filename's extension.
func FormatOf(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := extensions[ext]
	if !ok {
		return "", domain.UnsupportedFormat(ext)
	}
	return format, nil
}

// ParserByName returns the parser for a format name such as "yaml" or "yml".
func ParserByName(format string) (Parser, error) {
	name := strings.ToLower(strings.TrimPrefix(format, "."))
	if alias, ok := extensions["."+name]; ok {
		name = alias
	}
	newParser, ok := parsers[name]
	if !ok {
		return nil, domain.UnsupportedFormat(format)
	}
	return newParser(), nil
}

// formatName names the format handled by p for messages and logs.
func formatName(p Parser) string {
	switch p.(type) {
	case *yaml.YAML:
		return FormatYAML
	case *json.JSON:
		return FormatJSON
	case *TOML:
		return FormatTOML
	case *HCL:
		return FormatHCL
	case *XML:
		return FormatXML
	default:
		return "configuration"
	}
}

// ParserFor returns the parser matching filename's extension.
func ParserFor(filename string) (Parser, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	return ParserByName(format)
}
