package physics

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

const (
	// DefaultSegmentCapacity is the segment limit of a collider built by CreateLineCollider
	DefaultSegmentCapacity = 50
	// MaxSegmentCapacity bounds the storage a single collider may request
	MaxSegmentCapacity = 1 << 16
)

// ShapeKind identifies the variant of a Collider
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapeCircle
	ShapeLine
)

// String returns the shape name used in scene files and logs
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	default:
		return "unknown"
	}
}

// ParseShapeKind converts a scene file shape name into a ShapeKind
func ParseShapeKind(name string) (ShapeKind, error) {
	switch name {
	case "circle":
		return ShapeCircle, nil
	case "line":
		return ShapeLine, nil
	default:
		return ShapeUnknown, fmt.Errorf("unknown shape kind %q", name)
	}
}

// Collider is the generic collidable shape. Variants carry their own data
// and are dispatched on Kind.
type Collider interface {
	Kind() ShapeKind
}

// CircleCollider is a circular body shape. The radius is informational:
// line sweeps treat the body as a point.
type CircleCollider struct {
	Radius float64
}

// Kind implements Collider
func (c *CircleCollider) Kind() ShapeKind {
	return ShapeCircle
}

// LineCollider owns an ordered, append-only set of segments
type LineCollider struct {
	set LineSegmentSet
}

// CreateLineCollider allocates an empty line collider with the default capacity
func CreateLineCollider() (*LineCollider, error) {
	return NewLineCollider(DefaultSegmentCapacity)
}

// NewLineCollider allocates an empty line collider that can hold capacity segments
func NewLineCollider(capacity int) (*LineCollider, error) {
	if capacity <= 0 || capacity > MaxSegmentCapacity {
		return nil, fmt.Errorf("line collider with capacity %d: %w", capacity, ErrAllocationFailure)
	}
	return &LineCollider{set: newLineSegmentSet(capacity)}, nil
}

// Kind implements Collider
func (c *LineCollider) Kind() ShapeKind {
	return ShapeLine
}

// AddSegment appends a segment from p0 to p1
func (c *LineCollider) AddSegment(p0, p1 Vector2D) error {
	return c.set.Append(p0, p1)
}

// LoadFrom reads a segment count followed by that many point pairs.
// Segments appended before an error are kept.
func (c *LineCollider) LoadFrom(source GeometrySource) error {
	n, err := source.ReadInt()
	if err != nil {
		return fmt.Errorf("read segment count: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("negative segment count %d: %w", n, ErrFormat)
	}

	for i := 0; i < n; i++ {
		p0, err := source.ReadVector2D()
		if err != nil {
			return fmt.Errorf("read segment %d start: %w", i, err)
		}
		p1, err := source.ReadVector2D()
		if err != nil {
			return fmt.Errorf("read segment %d end: %w", i, err)
		}
		if err := c.AddSegment(p0, p1); err != nil {
			return err
		}
	}
	return nil
}

// Segments returns the segment set
func (c *LineCollider) Segments() *LineSegmentSet {
	return &c.set
}

// SegmentList returns a copy of the stored segments in order
func (c *LineCollider) SegmentList() []LineSegment {
	out := make([]LineSegment, c.set.Count())
	copy(out, c.set.segments)
	return out
}

// Validate returns ErrDegenerateGeometry for the first segment shorter than sqrt(eps)
func (c *LineCollider) Validate(eps float64) error {
	for i, seg := range c.set.All() {
		if seg.IsDegenerate(eps) {
			return fmt.Errorf("segment %d (%v -> %v): %w", i, seg.P0, seg.P1, ErrDegenerateGeometry)
		}
	}
	return nil
}

// Bounds returns the bounding rectangle of all segments.
// An empty collider has a zero Rect.
func (c *LineCollider) Bounds() Rect {
	if c.set.Count() == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range c.set.All() {
		for _, p := range [2]Vector2D{seg.P0, seg.P1} {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return RectFromCorners(Vector2D{X: minX, Y: minY}, Vector2D{X: maxX, Y: maxY})
}

// Fingerprint hashes the ordered segment coordinates. Colliders with the same
// segments in the same order share a fingerprint.
func (c *LineCollider) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, seg := range c.set.All() {
		for _, f := range [4]float64{seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
			d.Write(buf[:])
		}
	}
	return d.Sum64()
}
