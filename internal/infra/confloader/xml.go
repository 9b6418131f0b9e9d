package confloader

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// XML decodes the Doctrine migrations XML layout:
//
//	<doctrine-migrations>
//	    <name>Sandbox Migrations</name>
//	    <migrations-namespace>App\Migrations</migrations-namespace>
//	    <table name="migration_versions" column="version"
//	           column_length="255" executed_at_column="executed_at"/>
//	    <organize-migrations>year_and_month</organize-migrations>
//	    <migrations-directory>migrations</migrations-directory>
//	    <migrations>
//	        <migration version="001" class="Version001"/>
//	    </migrations>
//	    <custom-template>template.tpl</custom-template>
//	    <all-or-nothing>true</all-or-nothing>
//	</doctrine-migrations>
//
// Element names map onto keys with dashes replaced by underscores. Values
// stay strings; the key schema coerces them. Unknown elements and table
// attributes come out as keys of their own.
type XML struct{}

// XMLParser returns an XML parser.
func XMLParser() *XML {
	return &XML{}
}

type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

const (
	xmlTable      = "table"
	xmlMigrations = "migrations"
	xmlMigration  = "migration"
)

// Attributes of <table> and the keys they set.
var xmlTableAttrs = map[string]string{
	"name":               "table_name",
	"column":             "column_name",
	"column_length":      "column_length",
	"executed_at_column": "executed_at_column_name",
}

// Unmarshal parses XML bytes.
func (p *XML) Unmarshal(data []byte) (map[string]any, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(root.Children))
	set := func(key string, value any) error {
		if _, dup := out[key]; dup {
			return fmt.Errorf("duplicate setting %q", key)
		}
		out[key] = value
		return nil
	}

	for _, child := range root.Children {
		switch child.XMLName.Local {
		case xmlTable:
			for _, attr := range child.Attrs {
				if isNamespaceAttr(attr) {
					continue
				}
				key, ok := xmlTableAttrs[attr.Name.Local]
				if !ok {
					key = xmlTable + "." + attr.Name.Local
				}
				if err := set(key, attr.Value); err != nil {
					return nil, err
				}
			}

		case xmlMigrations:
			list, err := xmlMigrationList(child)
			if err != nil {
				return nil, err
			}
			if err := set(xmlMigrations, list); err != nil {
				return nil, err
			}

		default:
			key := strings.ReplaceAll(child.XMLName.Local, "-", "_")
			if err := set(key, strings.TrimSpace(child.Text)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func xmlMigrationList(n xmlNode) ([]any, error) {
	list := make([]any, 0, len(n.Children))
	for _, child := range n.Children {
		if child.XMLName.Local != xmlMigration {
			return nil, fmt.Errorf("unexpected element <%s> in <%s>", child.XMLName.Local, xmlMigrations)
		}
		entry := make(map[string]any, len(child.Attrs))
		for _, attr := range child.Attrs {
			if isNamespaceAttr(attr) {
				continue
			}
			entry[attr.Name.Local] = attr.Value
		}
		list = append(list, entry)
	}
	return list, nil
}

func isNamespaceAttr(attr xml.Attr) bool {
	return attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns"
}
