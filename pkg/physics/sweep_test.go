package physics

import (
	"errors"
	"math"
	"testing"
)

// testBody is a minimal Body for driving the detector directly
type testBody struct {
	old, pos, vel Vector2D
	rot           float64
}

func (b *testBody) Translation() Vector2D     { return b.pos }
func (b *testBody) SetTranslation(p Vector2D) { b.pos = p }
func (b *testBody) Rotation() float64         { return b.rot }
func (b *testBody) SetRotation(r float64)     { b.rot = r }
func (b *testBody) Velocity() Vector2D        { return b.vel }
func (b *testBody) SetVelocity(v Vector2D)    { b.vel = v }
func (b *testBody) OldTranslation() Vector2D  { return b.old }

func horizontalCollider(t *testing.T) *LineCollider {
	t.Helper()
	c, err := CreateLineCollider()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddSegment(Vector2D{X: 0, Y: 0}, Vector2D{X: 10, Y: 0}); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDetector_SweepSegment(t *testing.T) {
	seg := LineSegment{P0: Vector2D{X: 0, Y: 0}, P1: Vector2D{X: 10, Y: 0}}
	d := NewDetector()

	tests := []struct {
		name      string
		bs, be    Vector2D
		wantHit   bool
		wantPoint Vector2D
	}{
		{"perpendicular_crossing", Vector2D{X: 5, Y: -1}, Vector2D{X: 5, Y: 1}, true, Vector2D{X: 5, Y: 0}},
		{"crossing_from_above", Vector2D{X: 2, Y: 4}, Vector2D{X: 4, Y: -4}, true, Vector2D{X: 3, Y: 0}},
		{"outside_extent", Vector2D{X: 20, Y: -1}, Vector2D{X: 20, Y: 1}, false, Vector2D{}},
		{"left_of_extent", Vector2D{X: -0.5, Y: -1}, Vector2D{X: -0.5, Y: 1}, false, Vector2D{}},
		{"at_endpoint", Vector2D{X: 10, Y: -1}, Vector2D{X: 10, Y: 1}, true, Vector2D{X: 10, Y: 0}},
		{"no_motion", Vector2D{X: 5, Y: 0}, Vector2D{X: 5, Y: 0}, false, Vector2D{}},
		{"parallel_on_line", Vector2D{X: 1, Y: 0}, Vector2D{X: 9, Y: 0}, false, Vector2D{}},
		{"parallel_above", Vector2D{X: 1, Y: 1}, Vector2D{X: 9, Y: 1}, false, Vector2D{}},
		{"same_side_below", Vector2D{X: 5, Y: -3}, Vector2D{X: 5, Y: -1}, false, Vector2D{}},
		{"same_side_above", Vector2D{X: 5, Y: 3}, Vector2D{X: 5, Y: 1}, false, Vector2D{}},
		{"ends_on_line", Vector2D{X: 5, Y: 2}, Vector2D{X: 5, Y: 0}, true, Vector2D{X: 5, Y: 0}},
		{"starts_on_line_moving_away", Vector2D{X: 5, Y: 0}, Vector2D{X: 5, Y: 2}, false, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := d.SweepSegment(seg, 0, tt.bs, tt.be)
			if ok != tt.wantHit {
				t.Fatalf("SweepSegment() hit = %v, expected %v", ok, tt.wantHit)
			}
			if ok && !hit.Point.NearlyEqual(tt.wantPoint, 1e-12) {
				t.Errorf("impact point = %v, expected %v", hit.Point, tt.wantPoint)
			}
		})
	}
}

func TestDetector_HitDetails(t *testing.T) {
	seg := LineSegment{P0: Vector2D{X: 0, Y: 0}, P1: Vector2D{X: 10, Y: 0}}
	hit, ok := NewDetector().SweepSegment(seg, 3, Vector2D{X: 5, Y: -1}, Vector2D{X: 5, Y: 1})
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Segment != 3 {
		t.Errorf("Segment = %d, expected 3", hit.Segment)
	}
	if hit.Normal != (Vector2D{X: 0, Y: -1}) {
		t.Errorf("Normal = %v, expected (0, -1)", hit.Normal)
	}
	if hit.Incoming != (Vector2D{X: 0, Y: 1}) {
		t.Errorf("Incoming = %v, expected (0, 1)", hit.Incoming)
	}
	if math.Abs(hit.Time-0.5) > 1e-12 {
		t.Errorf("Time = %v, expected 0.5", hit.Time)
	}
}

func TestDetector_NearParallelUsesEpsilon(t *testing.T) {
	seg := LineSegment{P0: Vector2D{X: 0, Y: 0}, P1: Vector2D{X: 10, Y: 0}}
	// 1e-12 of vertical drift across the line is rounding noise, not a crossing.
	bs := Vector2D{X: 1, Y: -5e-13}
	be := Vector2D{X: 9, Y: 5e-13}

	if _, ok := NewDetector().SweepSegment(seg, 0, bs, be); ok {
		t.Error("near-parallel motion registered a hit with the default epsilon")
	}
	strict := Detector{Epsilon: 1e-15}
	if _, ok := strict.SweepSegment(seg, 0, bs, be); !ok {
		t.Error("near-parallel crossing missed with a tighter epsilon")
	}
}

func TestDetector_SkipsDegenerateSegment(t *testing.T) {
	c, _ := CreateLineCollider()
	p := Vector2D{X: 5, Y: 0}
	_ = c.AddSegment(p, p)

	body := &testBody{old: Vector2D{X: 5, Y: -1}, pos: Vector2D{X: 5, Y: 1}, vel: Vector2D{X: 0, Y: 2}}
	res := DetectAndResolve(c, body)
	if res.Collided || res.Applied != 0 {
		t.Errorf("degenerate segment produced a collision: %+v", res)
	}
	if body.pos != (Vector2D{X: 5, Y: 1}) {
		t.Errorf("body moved to %v", body.pos)
	}
}

func TestDetectAndResolve_NoMotion(t *testing.T) {
	c := horizontalCollider(t)
	body := &testBody{old: Vector2D{X: 5, Y: 0}, pos: Vector2D{X: 5, Y: 0}}

	if res := DetectAndResolve(c, body); res.Collided {
		t.Error("stationary body reported a collision")
	}
}

func TestDetectAndResolve_PerpendicularCrossing(t *testing.T) {
	c := horizontalCollider(t)
	body := &testBody{
		old: Vector2D{X: 5, Y: -1},
		pos: Vector2D{X: 5, Y: 1},
		vel: Vector2D{X: 0, Y: 3},
		rot: 1,
	}

	res := DetectAndResolve(c, body)
	if !res.Collided {
		t.Fatal("expected collision")
	}
	if !res.Hit.Point.NearlyEqual(Vector2D{X: 5, Y: 0}, 1e-12) {
		t.Errorf("impact point = %v, expected (5, 0)", res.Hit.Point)
	}
	if !body.pos.NearlyEqual(Vector2D{X: 5, Y: -1}, 1e-12) {
		t.Errorf("reflected position = %v, expected (5, -1)", body.pos)
	}
	if !body.vel.NearlyEqual(Vector2D{X: 0, Y: -3}, 1e-12) {
		t.Errorf("reflected velocity = %v, expected (0, -3)", body.vel)
	}
	if math.Abs(body.rot-(-math.Pi/2)) > 1e-12 {
		t.Errorf("rotation = %v, expected -pi/2", body.rot)
	}
}

func TestDetectAndResolve_OutsideExtent(t *testing.T) {
	c := horizontalCollider(t)
	body := &testBody{old: Vector2D{X: 20, Y: -1}, pos: Vector2D{X: 20, Y: 1}, vel: Vector2D{X: 0, Y: 2}}

	if res := DetectAndResolve(c, body); res.Collided {
		t.Error("crossing outside the segment extent reported a collision")
	}
	if body.pos != (Vector2D{X: 20, Y: 1}) {
		t.Errorf("body moved to %v", body.pos)
	}
}

// twoWalls has two parallel horizontal segments both crossed by a long vertical move
func twoWalls(t *testing.T) *LineCollider {
	t.Helper()
	c, _ := CreateLineCollider()
	_ = c.AddSegment(Vector2D{X: 0, Y: 4}, Vector2D{X: 10, Y: 4})
	_ = c.AddSegment(Vector2D{X: 0, Y: 2}, Vector2D{X: 10, Y: 2})
	return c
}

func TestDetectAndResolve_FirstHitWins(t *testing.T) {
	c := twoWalls(t)
	body := &testBody{old: Vector2D{X: 5, Y: 0}, pos: Vector2D{X: 5, Y: 6}, vel: Vector2D{X: 0, Y: 6}}

	res := NewDetector().DetectAndResolve(c, body)
	if !res.Collided || res.Applied != 1 {
		t.Fatalf("result = %+v, expected one applied collision", res)
	}
	// Storage order, not distance, picks the segment.
	if res.Hit.Segment != 0 {
		t.Errorf("hit segment = %d, expected 0", res.Hit.Segment)
	}
	if !body.pos.NearlyEqual(Vector2D{X: 5, Y: 2}, 1e-12) {
		t.Errorf("position = %v, expected (5, 2)", body.pos)
	}
}

func TestDetectAndResolve_LegacyScan(t *testing.T) {
	c := twoWalls(t)
	body := &testBody{old: Vector2D{X: 5, Y: 0}, pos: Vector2D{X: 5, Y: 6}, vel: Vector2D{X: 0, Y: 6}}

	d := Detector{Policy: ScanLegacy}
	res := d.DetectAndResolve(c, body)
	if res.Collided {
		t.Error("legacy scan must report no collision")
	}
	if res.Applied != 2 || res.Hit.Segment != 1 {
		t.Fatalf("result = %+v, expected two responses ending on segment 1", res)
	}
	// Second response overwrites the first: Bi=(5,2), i=(0,4), r=(0,-4).
	if !body.pos.NearlyEqual(Vector2D{X: 5, Y: -2}, 1e-12) {
		t.Errorf("position = %v, expected (5, -2)", body.pos)
	}
	if math.Abs(body.vel.Length()-6) > 1e-12 {
		t.Errorf("speed = %v, expected 6", body.vel.Length())
	}
}

func TestDetector_Collide(t *testing.T) {
	line := horizontalCollider(t)
	circle := &CircleCollider{Radius: 0.5}
	d := NewDetector()

	t.Run("line_vs_circle", func(t *testing.T) {
		body := &testBody{old: Vector2D{X: 5, Y: -1}, pos: Vector2D{X: 5, Y: 1}, vel: Vector2D{X: 0, Y: 2}}
		res, err := d.Collide(line, circle, body)
		if err != nil || !res.Collided {
			t.Fatalf("Collide() = %+v, %v", res, err)
		}
	})

	mismatched := []struct {
		name string
		a, b Collider
	}{
		{"circle_vs_line", circle, line},
		{"line_vs_line", line, line},
		{"circle_vs_circle", circle, circle},
		{"nil_collider", nil, circle},
	}
	for _, tt := range mismatched {
		t.Run(tt.name, func(t *testing.T) {
			body := &testBody{old: Vector2D{X: 5, Y: -1}, pos: Vector2D{X: 5, Y: 1}, vel: Vector2D{X: 0, Y: 2}}
			res, err := d.Collide(tt.a, tt.b, body)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("Collide() error = %v, expected ErrShapeMismatch", err)
			}
			if res.Collided || body.pos != (Vector2D{X: 5, Y: 1}) {
				t.Error("mismatched pair touched the body")
			}
		})
	}
}

func TestParseScanPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ScanPolicy
		wantErr bool
	}{
		{"", ScanFirstHit, false},
		{"first-hit", ScanFirstHit, false},
		{"legacy", ScanLegacy, false},
		{"all", ScanFirstHit, true},
	}
	for _, tt := range tests {
		got, err := ParseScanPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseScanPolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
}
