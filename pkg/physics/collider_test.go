package physics

import (
	"errors"
	"strings"
	"testing"
)

func TestNewLineCollider(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  bool
	}{
		{"default_capacity", DefaultSegmentCapacity, false},
		{"single_segment", 1, false},
		{"zero_capacity", 0, true},
		{"negative_capacity", -3, true},
		{"over_limit", MaxSegmentCapacity + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewLineCollider(tt.capacity)
			if tt.wantErr {
				if !errors.Is(err, ErrAllocationFailure) {
					t.Fatalf("NewLineCollider(%d) error = %v, expected ErrAllocationFailure", tt.capacity, err)
				}
				if c != nil {
					t.Error("NewLineCollider() returned a collider alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLineCollider(%d) unexpected error: %v", tt.capacity, err)
			}
			if c.Kind() != ShapeLine {
				t.Errorf("Kind() = %v, expected line", c.Kind())
			}
			if c.Segments().Count() != 0 || c.Segments().Capacity() != tt.capacity {
				t.Errorf("new collider has %d/%d segments", c.Segments().Count(), c.Segments().Capacity())
			}
		})
	}
}

func TestLineCollider_CapacityBoundary(t *testing.T) {
	c, err := NewLineCollider(3)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		p := float64(i)
		if err := c.AddSegment(Vector2D{X: p, Y: 0}, Vector2D{X: p, Y: 1}); err != nil {
			t.Fatalf("AddSegment #%d failed: %v", i, err)
		}
	}

	err = c.AddSegment(Vector2D{X: 9, Y: 0}, Vector2D{X: 9, Y: 1})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("AddSegment beyond capacity error = %v, expected ErrCapacityExceeded", err)
	}
	if c.Segments().Count() != 3 {
		t.Errorf("Count() = %d after rejected append, expected 3", c.Segments().Count())
	}
}

func TestLineCollider_AcceptsDegenerateSegment(t *testing.T) {
	c, _ := CreateLineCollider()
	p := Vector2D{X: 2, Y: 2}
	if err := c.AddSegment(p, p); err != nil {
		t.Fatalf("AddSegment(p, p) = %v, expected nil", err)
	}
	if err := c.Validate(DefaultEpsilon); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("Validate() = %v, expected ErrDegenerateGeometry", err)
	}
}

func TestLineCollider_OrderPreserved(t *testing.T) {
	c, _ := CreateLineCollider()
	want := []LineSegment{
		{P0: Vector2D{X: 0, Y: 0}, P1: Vector2D{X: 10, Y: 0}},
		{P0: Vector2D{X: 10, Y: 0}, P1: Vector2D{X: 10, Y: 10}},
		{P0: Vector2D{X: 10, Y: 0}, P1: Vector2D{X: 0, Y: 0}},
	}
	for _, s := range want {
		if err := c.AddSegment(s.P0, s.P1); err != nil {
			t.Fatal(err)
		}
	}

	for i, got := range c.Segments().All() {
		if got != want[i] {
			t.Errorf("segment %d = %v, expected %v", i, got, want[i])
		}
		if c.Segments().At(i) != want[i] {
			t.Errorf("At(%d) = %v, expected %v", i, c.Segments().At(i), want[i])
		}
	}
}

const squareGeometry = `# unit-ish square
4
0 0   10 0
10 0  10 10
10 10 0 10
0 10  0 0
`

func TestLineCollider_LoadFromIsDeterministic(t *testing.T) {
	a, _ := CreateLineCollider()
	b, _ := CreateLineCollider()

	if err := a.LoadFrom(NewTextSource(strings.NewReader(squareGeometry))); err != nil {
		t.Fatalf("LoadFrom(a) failed: %v", err)
	}
	if err := b.LoadFrom(NewTextSource(strings.NewReader(squareGeometry))); err != nil {
		t.Fatalf("LoadFrom(b) failed: %v", err)
	}

	sa, sb := a.SegmentList(), b.SegmentList()
	if len(sa) != 4 || len(sb) != 4 {
		t.Fatalf("loaded %d and %d segments, expected 4", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i] != sb[i] {
			t.Errorf("segment %d differs: %v vs %v", i, sa[i], sb[i])
		}
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical geometry produced different fingerprints")
	}
}

func TestLineCollider_FingerprintDependsOnOrder(t *testing.T) {
	s1 := LineSegment{P0: Vector2D{X: 0, Y: 0}, P1: Vector2D{X: 1, Y: 0}}
	s2 := LineSegment{P0: Vector2D{X: 1, Y: 0}, P1: Vector2D{X: 1, Y: 1}}

	a, _ := CreateLineCollider()
	b, _ := CreateLineCollider()
	_ = a.AddSegment(s1.P0, s1.P1)
	_ = a.AddSegment(s2.P0, s2.P1)
	_ = b.AddSegment(s2.P0, s2.P1)
	_ = b.AddSegment(s1.P0, s1.P1)

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("reordered geometry produced the same fingerprint")
	}
}

func TestLineCollider_LoadFromErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		capacity  int
		wantErr   error
		wantCount int
	}{
		{"empty_stream", "", 10, ErrFormat, 0},
		{"bad_count", "many", 10, ErrFormat, 0},
		{"negative_count", "-1", 10, ErrFormat, 0},
		{"truncated_after_first", "2\n0 0 1 0\n1 0", 10, ErrFormat, 1},
		{"bad_coordinate", "1\n0 zero 1 0", 10, ErrFormat, 0},
		{"nan_coordinate", "1\n0 NaN 1 0", 10, ErrFormat, 0},
		{"over_capacity", "3\n0 0 1 0\n1 0 1 1\n1 1 0 1", 2, ErrCapacityExceeded, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewLineCollider(tt.capacity)
			if err != nil {
				t.Fatal(err)
			}
			err = c.LoadFrom(NewTextSource(strings.NewReader(tt.input)))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadFrom() error = %v, expected %v", err, tt.wantErr)
			}
			if got := c.Segments().Count(); got != tt.wantCount {
				t.Errorf("Count() = %d after failed load, expected %d", got, tt.wantCount)
			}
		})
	}
}

func TestLineCollider_Bounds(t *testing.T) {
	c, _ := CreateLineCollider()
	if got := c.Bounds(); got != (Rect{}) {
		t.Errorf("Bounds() of empty collider = %+v, expected zero", got)
	}

	if err := c.LoadFrom(NewTextSource(strings.NewReader(squareGeometry))); err != nil {
		t.Fatal(err)
	}
	b := c.Bounds()
	if b.Center != (Vector2D{X: 5, Y: 5}) || b.Width != 10 || b.Height != 10 {
		t.Errorf("Bounds() = %+v, expected 10x10 centered on (5,5)", b)
	}
}

func TestCollider_Kinds(t *testing.T) {
	var line Collider = &LineCollider{}
	var circle Collider = &CircleCollider{Radius: 1}

	if line.Kind() != ShapeLine || circle.Kind() != ShapeCircle {
		t.Errorf("kinds = %v, %v", line.Kind(), circle.Kind())
	}

	for _, name := range []string{"line", "circle"} {
		k, err := ParseShapeKind(name)
		if err != nil || k.String() != name {
			t.Errorf("ParseShapeKind(%q) = %v, %v", name, k, err)
		}
	}
	if _, err := ParseShapeKind("polygon"); err == nil {
		t.Error("ParseShapeKind(polygon) expected error")
	}
}
