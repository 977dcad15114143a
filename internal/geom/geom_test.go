package geom

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewCoilValidation(t *testing.T) {
	tests := []struct {
		name       string
		radius     float64
		current    float64
		resolution int
	}{
		{"resolution too low", 1, 1, 2},
		{"zero radius", 0, 1, 64},
		{"negative radius", -1, 1, 64},
		{"zero current", 1, 0, 64},
		{"NaN current", 1, math.NaN(), 64},
		{"infinite radius", math.Inf(1), 1, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoil(tt.radius, tt.current, r3.Vec{}, tt.resolution)
			if !errors.Is(err, ErrBadGeometry) {
				t.Errorf("expected ErrBadGeometry, got %v", err)
			}
		})
	}

	if _, err := NewCoil(1, 1, r3.Vec{}, 3); err != nil {
		t.Errorf("minimal valid coil rejected: %v", err)
	}
}

func TestSegmentCount(t *testing.T) {
	for _, res := range []int{3, 16, 64, 1024} {
		c, err := NewCoil(1, 1, r3.Vec{}, res)
		if err != nil {
			t.Fatalf("NewCoil(%d): %v", res, err)
		}
		segs := c.Segments()
		if len(segs) != 2*res {
			t.Errorf("resolution %d: got %d segments, want %d", res, len(segs), 2*res)
		}
	}
}

func TestSegmentsOnCircle(t *testing.T) {
	c, _ := NewCoil(2.5, 1, r3.Vec{Z: 0.5}, 64)

	for i, s := range c.Segments() {
		r := r3.Sub(s.R0, c.Center)
		if math.Abs(r3.Norm(r)-c.Radius) > 1e-12 {
			t.Fatalf("segment %d node at radius %g, want %g", i, r3.Norm(r), c.Radius)
		}
		if r.Z != 0 {
			t.Fatalf("segment %d node off the coil plane: %v", i, s.R0)
		}
		if s.DL.Z != 0 {
			t.Fatalf("segment %d element out of plane: %v", i, s.DL)
		}
		// Tangency: element perpendicular to the radius vector.
		if dot := r3.Dot(r3.Unit(r), r3.Unit(s.DL)); math.Abs(dot) > 1e-9 {
			t.Fatalf("segment %d element not tangent, cos=%g", i, dot)
		}
	}
}

func TestSegmentsCloseLoop(t *testing.T) {
	c, _ := NewCoil(1, 1, r3.Vec{}, 64)

	// Tangent elements of a closed loop sum to the zero vector.
	var total r3.Vec
	for _, s := range c.Segments() {
		total = r3.Add(total, s.DL)
	}
	if r3.Norm(total) > 1e-12 {
		t.Errorf("elements do not close the loop, residual %v", total)
	}
}

func TestSegmentsTotalLength(t *testing.T) {
	c, _ := NewCoil(1, 1, r3.Vec{}, 64)

	// Equal-weight elements carry the full circumference.
	sum := 0.0
	for _, s := range c.Segments() {
		sum += r3.Norm(s.DL)
	}
	if math.Abs(sum-2*math.Pi) > 1e-10 {
		t.Errorf("total element length %.15f, want 2π", sum)
	}
}

func TestAntipodalPairs(t *testing.T) {
	c, _ := NewCoil(1, 1, r3.Vec{}, 16)
	segs := c.Segments()

	for i := 0; i < len(segs); i += 2 {
		a, b := segs[i], segs[i+1]
		if r3.Norm(r3.Add(a.R0, b.R0)) > 1e-12 {
			t.Fatalf("pair %d nodes not antipodal: %v vs %v", i/2, a.R0, b.R0)
		}
		if r3.Norm(r3.Add(a.DL, b.DL)) > 1e-12 {
			t.Fatalf("pair %d elements not opposite: %v vs %v", i/2, a.DL, b.DL)
		}
	}
}

func TestHelmholtzPair(t *testing.T) {
	a, err := HelmholtzPair(1, 1, 1, 64)
	if err != nil {
		t.Fatalf("HelmholtzPair: %v", err)
	}
	if len(a.Coils) != 2 {
		t.Fatalf("expected 2 coils, got %d", len(a.Coils))
	}
	if a.Coils[0].Center.Z != -0.5 || a.Coils[1].Center.Z != 0.5 {
		t.Errorf("coils at %v and %v, want z=∓0.5", a.Coils[0].Center, a.Coils[1].Center)
	}

	if _, err := HelmholtzPair(1, 1, 0, 64); !errors.Is(err, ErrBadGeometry) {
		t.Error("zero separation accepted")
	}
}

func TestStack(t *testing.T) {
	a, err := Stack(5, 5, 1, 1, 64)
	if err != nil {
		t.Fatalf("Stack: %v", err)
	}
	if len(a.Coils) != 5 {
		t.Fatalf("expected 5 coils, got %d", len(a.Coils))
	}
	if a.Coils[0].Center.Z != -5 || a.Coils[4].Center.Z != 5 {
		t.Errorf("stack ends at %g and %g, want ±5", a.Coils[0].Center.Z, a.Coils[4].Center.Z)
	}
	if a.Coils[2].Center.Z != 0 {
		t.Errorf("middle coil at z=%g, want 0", a.Coils[2].Center.Z)
	}

	if got := len(a.Segments()); got != 5*2*64 {
		t.Errorf("assembly segments = %d, want %d", got, 5*2*64)
	}
}
