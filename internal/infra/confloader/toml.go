package confloader

import "github.com/pelletier/go-toml/v2"

// TOML decodes TOML documents.
type TOML struct{}

// TOMLParser returns a TOML parser.
func TOMLParser() *TOML {
	return &TOML{}
}

// Unmarshal parses TOML bytes. Integers decode as int64 and arrays of
// tables as []any holding map[string]any.
func (p *TOML) Unmarshal(data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
