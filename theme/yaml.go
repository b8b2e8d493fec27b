package theme

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type document struct {
	Version int               `yaml:"version"`
	Values  map[string]string `yaml:"values"`
}

// WriteYAML writes the flat key/value set as a YAML document.
func WriteYAML(w io.Writer, values map[string]string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: 1, Values: values}); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML parses a document written by WriteYAML. Every key must belong to
// the theme.
func ReadYAML(r io.Reader) (map[string]string, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode theme yaml: %w", err)
	}
	if doc.Version != 1 {
		return nil, fmt.Errorf("unsupported theme yaml version %d", doc.Version)
	}
	for k, v := range doc.Values {
		f, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
		if f.json {
			if _, err := encodeText(f, v); err != nil {
				return nil, err
			}
		}
	}
	if doc.Values == nil {
		doc.Values = map[string]string{}
	}
	return doc.Values, nil
}
