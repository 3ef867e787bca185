package physics

import (
	"fmt"
	"iter"
)

// LineSegment is one undirected edge of collision geometry
type LineSegment struct {
	P0 Vector2D `json:"p0" yaml:"p0"`
	P1 Vector2D `json:"p1" yaml:"p1"`
}

// Edge returns P1 - P0
func (s LineSegment) Edge() Vector2D {
	return s.P1.Sub(s.P0)
}

// Normal returns the unit normal (e.y, -e.x) of the segment.
// A degenerate segment yields the zero vector.
func (s LineSegment) Normal() Vector2D {
	return s.Edge().Perp().Normalize()
}

// IsDegenerate reports whether the segment is shorter than sqrt(eps)
func (s LineSegment) IsDegenerate(eps float64) bool {
	return s.Edge().LengthSquared() <= eps
}

// LineSegmentSet is an ordered, append-only, bounded list of segments
type LineSegmentSet struct {
	segments []LineSegment
	capacity int
}

func newLineSegmentSet(capacity int) LineSegmentSet {
	return LineSegmentSet{
		segments: make([]LineSegment, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a segment at the end of the set.
// Any two points are accepted, including equal ones.
func (s *LineSegmentSet) Append(p0, p1 Vector2D) error {
	if len(s.segments) >= s.capacity {
		return fmt.Errorf("append segment %d of %d: %w", len(s.segments)+1, s.capacity, ErrCapacityExceeded)
	}
	s.segments = append(s.segments, LineSegment{P0: p0, P1: p1})
	return nil
}

// Count returns the number of stored segments
func (s *LineSegmentSet) Count() int {
	return len(s.segments)
}

// Capacity returns the maximum number of segments
func (s *LineSegmentSet) Capacity() int {
	return s.capacity
}

// At returns the segment at index i; i must be in [0, Count())
func (s *LineSegmentSet) At(i int) LineSegment {
	return s.segments[i]
}

// All iterates segments in insertion order
func (s *LineSegmentSet) All() iter.Seq2[int, LineSegment] {
	return func(yield func(int, LineSegment) bool) {
		for i, seg := range s.segments {
			if !yield(i, seg) {
				return
			}
		}
	}
}
