// pkg/scene/document.go
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-ricochet/pkg/physics"
	"github.com/opd-ai/go-ricochet/pkg/validation"
)

// IndexBaseName is the index file listing the scenes of a directory,
// without its extension
const IndexBaseName = "scenes"

var extensions = []string{".json", ".yaml", ".yml"}

// ErrNoIndex is returned when a scene directory has no index file
var ErrNoIndex = errors.New("scene index not found")

// Index lists the scenes available in a directory
type Index struct {
	Scenes []string `json:"scenes" yaml:"scenes"`
}

// Document describes one scene and the entities it spawns
type Document struct {
	Name     string       `json:"name" yaml:"name"`
	Entities []EntitySpec `json:"entities" yaml:"entities"`
}

// EntitySpec describes one entity of a scene
type EntitySpec struct {
	Name     string            `json:"name" yaml:"name"`
	Position physics.Vector2D  `json:"position" yaml:"position"`
	Rotation float64           `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Velocity *physics.Vector2D `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Collider *ColliderSpec     `json:"collider,omitempty" yaml:"collider,omitempty"`
}

// ColliderSpec describes a circle or line collider. Line geometry is given
// inline as Segments, in a text Geometry file, or both (file first).
type ColliderSpec struct {
	Shape    string        `json:"shape" yaml:"shape"`
	Radius   float64       `json:"radius,omitempty" yaml:"radius,omitempty"`
	Capacity int           `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Geometry string        `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Segments []SegmentSpec `json:"segments,omitempty" yaml:"segments,omitempty"`

	// resolved geometry file contents, filled in by the loader
	loaded []physics.LineSegment
}

// SegmentSpec is one inline line segment
type SegmentSpec struct {
	From physics.Vector2D `json:"from" yaml:"from"`
	To   physics.Vector2D `json:"to" yaml:"to"`
}

// DecodeJSON decodes v from a JSON reader
func DecodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

// DecodeYAML decodes v from a YAML reader
func DecodeYAML(r io.Reader, v any) error {
	return yaml.NewDecoder(r).Decode(v)
}

// decodeFile decodes a JSON or YAML file, chosen by extension
func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if err := validation.ValidateDocumentSize(info.Size()); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = DecodeYAML(f, v)
	default:
		err = DecodeJSON(f, v)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// findFile returns the first existing dir/base{.json,.yaml,.yml}
func findFile(dir, base string) (string, bool) {
	for _, ext := range extensions {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// ReadIndex reads the scene index of dir
func ReadIndex(dir string) (*Index, error) {
	path, ok := findFile(dir, IndexBaseName)
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrNoIndex, dir)
	}
	var idx Index
	if err := decodeFile(path, &idx); err != nil {
		return nil, err
	}
	for i, name := range idx.Scenes {
		clean, err := validation.ValidateName(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		idx.Scenes[i] = clean
	}
	return &idx, nil
}

// ReadDocument reads the document of the named scene in dir
func ReadDocument(dir, name string) (*Document, error) {
	path, ok := findFile(dir, name)
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", name, os.ErrNotExist)
	}
	var doc Document
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = name
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	return &doc, nil
}

// Validate checks names, coordinates, radii and capacities, trimming names in place
func (d *Document) Validate() error {
	var err error
	if d.Name, err = validation.ValidateName(d.Name); err != nil {
		return err
	}
	for i := range d.Entities {
		if err := d.Entities[i].validate(); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return nil
}

func (s *EntitySpec) validate() error {
	var err error
	if s.Name, err = validation.ValidateName(s.Name); err != nil {
		return err
	}
	if err := validation.ValidateVector(s.Position); err != nil {
		return fmt.Errorf("%s position: %w", s.Name, err)
	}
	if s.Velocity != nil {
		if err := validation.ValidateVector(*s.Velocity); err != nil {
			return fmt.Errorf("%s velocity: %w", s.Name, err)
		}
	}
	if s.Collider == nil {
		return nil
	}
	if err := validation.ValidateRadius(s.Collider.Radius); err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	if err := validation.ValidateCapacity(s.Collider.Capacity); err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	for _, seg := range s.Collider.Segments {
		if err := validation.ValidateVector(seg.From); err != nil {
			return fmt.Errorf("%s segment: %w", s.Name, err)
		}
		if err := validation.ValidateVector(seg.To); err != nil {
			return fmt.Errorf("%s segment: %w", s.Name, err)
		}
	}
	return nil
}
