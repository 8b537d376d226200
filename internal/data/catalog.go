package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/partyroll/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a catalog document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for formats other than YAML and JSON
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// FormatFromPath picks a format from a file extension, defaulting to YAML
func FormatFromPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeCatalog reads a catalog document. Both a list of challenges and a mapping
// from id to challenge are accepted; JSON documents parse as YAML. Document order
// is preserved because selection draws depend on it.
func DecodeCatalog(r io.Reader) ([]*models.Challenge, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []*models.Challenge{}, nil
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		challenges := make([]*models.Challenge, 0, len(root.Content))
		if err := root.Decode(&challenges); err != nil {
			return nil, fmt.Errorf("failed to decode catalog list: %w", err)
		}
		return challenges, nil

	case yaml.MappingNode:
		challenges := make([]*models.Challenge, 0, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i].Value

			var challenge models.Challenge
			if err := root.Content[i+1].Decode(&challenge); err != nil {
				return nil, fmt.Errorf("failed to decode challenge %s: %w", key, err)
			}

			if challenge.ID == "" {
				challenge.ID = key
			} else if challenge.ID != key {
				return nil, fmt.Errorf("challenge key %s does not match id %s", key, challenge.ID)
			}
			challenges = append(challenges, &challenge)
		}
		return challenges, nil
	}

	return nil, fmt.Errorf("catalog must be a list or a mapping, got line %d", root.Line)
}

// EncodeCatalog writes the catalog as an ordered list
func EncodeCatalog(w io.Writer, challenges []*models.Challenge, format Format) error {
	if challenges == nil {
		challenges = []*models.Challenge{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(challenges); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		return nil

	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(challenges); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		return enc.Close()
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// DecodeCatalogBytes is a convenience wrapper around DecodeCatalog
func DecodeCatalogBytes(b []byte) ([]*models.Challenge, error) {
	return DecodeCatalog(bytes.NewReader(b))
}
