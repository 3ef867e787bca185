package physics

import (
	"fmt"
	"math"
)

// DefaultEpsilon is the near-zero threshold for parallel motion and degenerate edges
const DefaultEpsilon = 1e-9

// ScanPolicy selects what happens after the first confirmed segment hit
type ScanPolicy int

const (
	// ScanFirstHit stops at the first hit in storage order and reports it
	ScanFirstHit ScanPolicy = iota
	// ScanLegacy applies a response for every hit in storage order, later
	// responses overwriting earlier ones, and never reports a collision
	ScanLegacy
)

// String returns the configuration name of the policy
func (p ScanPolicy) String() string {
	switch p {
	case ScanLegacy:
		return "legacy"
	default:
		return "first-hit"
	}
}

// ParseScanPolicy converts a configuration name into a ScanPolicy
func ParseScanPolicy(name string) (ScanPolicy, error) {
	switch name {
	case "", "first-hit":
		return ScanFirstHit, nil
	case "legacy":
		return ScanLegacy, nil
	default:
		return ScanFirstHit, fmt.Errorf("unknown scan policy %q", name)
	}
}

// Hit describes where a swept point crossed a segment
type Hit struct {
	Segment  int
	Point    Vector2D // Bi
	Normal   Vector2D // n
	Incoming Vector2D // Be - Bi
	Time     float64  // ti, fraction of the frame displacement
}

// Result is the outcome of one DetectAndResolve call
type Result struct {
	Collided bool
	Hit      Hit
	Response Response
	// Applied counts responses written to the body
	Applied int
}

// Detector sweeps a moving point against line colliders
type Detector struct {
	Epsilon float64
	Policy  ScanPolicy
}

// NewDetector returns a first-hit detector with DefaultEpsilon
func NewDetector() Detector {
	return Detector{Epsilon: DefaultEpsilon, Policy: ScanFirstHit}
}

func (d Detector) eps() float64 {
	if d.Epsilon > 0 {
		return d.Epsilon
	}
	return DefaultEpsilon
}

// SweepSegment tests the displacement bs -> be against one segment
func (d Detector) SweepSegment(seg LineSegment, index int, bs, be Vector2D) (Hit, bool) {
	eps := d.eps()
	if seg.IsDegenerate(eps) {
		return Hit{}, false
	}

	n := seg.Normal()
	v := be.Sub(bs)

	nv := n.Dot(v)
	if math.Abs(nv) <= eps {
		return Hit{}, false
	}

	d0 := n.Dot(bs)
	dP := n.Dot(seg.P0)
	d1 := n.Dot(be)
	if d0 <= dP && d1 < dP {
		return Hit{}, false
	}
	if d0 >= dP && d1 > dP {
		return Hit{}, false
	}

	ti := (dP - d0) / nv
	bi := v.ScaleAdd(bs, ti)

	if seg.P1.Sub(seg.P0).Dot(bi.Sub(seg.P0)) < 0 {
		return Hit{}, false
	}
	if seg.P0.Sub(seg.P1).Dot(bi.Sub(seg.P1)) < 0 {
		return Hit{}, false
	}

	return Hit{
		Segment:  index,
		Point:    bi,
		Normal:   n,
		Incoming: be.Sub(bi),
		Time:     ti,
	}, true
}

// Sweep returns the first segment hit in storage order
func (d Detector) Sweep(c *LineCollider, bs, be Vector2D) (Hit, bool) {
	for i, seg := range c.set.All() {
		if hit, ok := d.SweepSegment(seg, i, bs, be); ok {
			return hit, true
		}
	}
	return Hit{}, false
}

// Hits returns every segment hit in storage order
func (d Detector) Hits(c *LineCollider, bs, be Vector2D) []Hit {
	var hits []Hit
	for i, seg := range c.set.All() {
		if hit, ok := d.SweepSegment(seg, i, bs, be); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// DetectAndResolve sweeps body from its old to its current translation
// against c and reflects it off the hit segment.
func (d Detector) DetectAndResolve(c *LineCollider, body Body) Result {
	bs := body.OldTranslation()
	be := body.Translation()

	if d.Policy == ScanLegacy {
		var res Result
		for _, hit := range d.Hits(c, bs, be) {
			resp := Reflect(hit, body.Velocity())
			resp.Apply(body)
			res.Hit = hit
			res.Response = resp
			res.Applied++
		}
		return res
	}

	hit, ok := d.Sweep(c, bs, be)
	if !ok {
		return Result{}
	}
	resp := Reflect(hit, body.Velocity())
	resp.Apply(body)
	return Result{Collided: true, Hit: hit, Response: resp, Applied: 1}
}

// Collide dispatches on shape kinds. Only a line collider against a circle
// body is supported; any other pair returns ErrShapeMismatch untouched.
func (d Detector) Collide(a, b Collider, body Body) (Result, error) {
	if a == nil || b == nil {
		return Result{}, fmt.Errorf("nil collider: %w", ErrShapeMismatch)
	}
	line, ok := a.(*LineCollider)
	if !ok || a.Kind() != ShapeLine || b.Kind() != ShapeCircle {
		return Result{}, fmt.Errorf("%s against %s: %w", a.Kind(), b.Kind(), ErrShapeMismatch)
	}
	return d.DetectAndResolve(line, body), nil
}

// DetectAndResolve runs the default detector
func DetectAndResolve(c *LineCollider, body Body) Result {
	return NewDetector().DetectAndResolve(c, body)
}
