// Package export produces downloadable copies of a loaded document.
//
// Two variants exist: the original source exactly as it was read, and the
// bundled document with local references inlined. Both are named after
// the original's serialization, so a JSON source exports document.json
// and anything else exports document.yaml.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/fileutil"
	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/oaserrors"
)

// Variant selects which form of the document to export.
type Variant string

const (
	// Original exports the source bytes unchanged.
	Original Variant = "original"
	// Bundled exports the document with local references inlined.
	Bundled Variant = "bundled"
)

// ParseVariant maps a name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case Original, Bundled:
		return Variant(s), nil
	}
	return "", &oaserrors.ConfigError{Option: "variant", Value: s, Message: "must be original or bundled"}
}

const (
	// ContentTypeJSON is the media type of a JSON export.
	ContentTypeJSON = "application/json"
	// ContentTypeYAML is the media type of a YAML export.
	ContentTypeYAML = "application/yaml"
)

// File is an export ready to be saved or served.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// IsJSON reports whether the original source is JSON.
func IsJSON(original []byte) bool {
	return len(original) > 0 && json.Valid(original)
}

// Document exports original or bundled according to which. The bundled
// form is serialized as JSON when the original is JSON, otherwise as YAML.
func Document(original []byte, bundled *yaml.Node, which Variant) (*File, error) {
	switch which {
	case Original:
		return OriginalFile(original), nil
	case Bundled:
		return BundledFile(original, bundled)
	default:
		return nil, fmt.Errorf("export: %w", &oaserrors.ConfigError{Option: "variant", Value: string(which), Message: "unknown export variant"})
	}
}

// OriginalFile wraps the source bytes. An empty source yields an empty body.
func OriginalFile(original []byte) *File {
	f := newFile(IsJSON(original))
	f.Body = append([]byte(nil), original...)
	return f
}

// BundledFile serializes bundled in the original's format.
func BundledFile(original []byte, bundled *yaml.Node) (*File, error) {
	f := newFile(IsJSON(original))
	if nodeutil.Resolve(bundled) == nil {
		return f, nil
	}

	var err error
	if f.ContentType == ContentTypeJSON {
		f.Body, err = nodeutil.MarshalJSON(bundled, "  ")
	} else {
		f.Body, err = nodeutil.MarshalYAML(bundled)
	}
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return f, nil
}

func newFile(isJSON bool) *File {
	if isJSON {
		return &File{Name: "document.json", ContentType: ContentTypeJSON}
	}
	return &File{Name: "document.yaml", ContentType: ContentTypeYAML}
}

// Save writes f into dir under its Name and returns the written path.
func (f *File) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path, err := fileutil.WriteFile(filepath.Join(dir, f.Name), f.Body)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}
