package fractal

import (
	"math"
	"testing"
)

func TestVertexCountForDepth(t *testing.T) {
	tests := []struct {
		maxDepth int
		want     int
	}{
		{-2, 0},
		{-1, 0},
		{0, 3},
		{1, 12},
		{2, 39},
		{3, 120},
		{4, 363},
		{8, 9837},
	}

	for _, tt := range tests {
		if got := VertexCountForDepth(tt.maxDepth); got != tt.want {
			t.Errorf("VertexCountForDepth(%d) = %d, want %d", tt.maxDepth, got, tt.want)
		}
	}
}

func TestGenerator_MatchesClosedForm(t *testing.T) {
	g := NewGenerator()
	a, b, c := RootTriangle()

	for depth := 0; depth <= 6; depth++ {
		g.Generate(a, b, c, depth)
		want := VertexCountForDepth(depth)
		if got := g.VertexCount(); got != want {
			t.Errorf("depth %d: VertexCount() = %d, want %d", depth, got, want)
		}
		if got := len(g.Vertices()); got != want*VertexStride {
			t.Errorf("depth %d: len(Vertices()) = %d, want %d", depth, got, want*VertexStride)
		}
		if got := g.TriangleCount(); got != want/3 {
			t.Errorf("depth %d: TriangleCount() = %d, want %d", depth, got, want/3)
		}
	}
}

func TestGenerator_NegativeDepthEmpty(t *testing.T) {
	g := NewGenerator()
	a, b, c := RootTriangle()

	verts := g.Generate(a, b, c, -1)
	if len(verts) != 0 {
		t.Errorf("Generate with maxDepth -1 produced %d floats, want 0", len(verts))
	}
	if g.TriangleCount() != 0 {
		t.Errorf("TriangleCount() = %d, want 0", g.TriangleCount())
	}
}

func TestGenerator_DepthZero(t *testing.T) {
	g := NewGenerator()
	a, b, c := RootTriangle()

	verts := g.Generate(a, b, c, 0)
	if len(verts) != 3*VertexStride {
		t.Fatalf("depth 0 produced %d floats, want %d", len(verts), 3*VertexStride)
	}

	// Exactly the three input corners, in order.
	wantPos := [][3]float32{
		{-0.5, -0.5, 0},
		{0, 0.5, 0},
		{0.5, -0.5, 0},
	}
	for i, want := range wantPos {
		rec := verts[i*VertexStride:]
		if rec[0] != want[0] || rec[1] != want[1] || rec[2] != want[2] {
			t.Errorf("vertex %d position = (%v, %v, %v), want %v", i, rec[0], rec[1], rec[2], want)
		}
		// Depth coloring with a zero bound keeps green at 0.
		if rec[3] != 0.25 || rec[4] != 0 || rec[5] != 0.75 {
			t.Errorf("vertex %d color = (%v, %v, %v), want (0.25, 0, 0.75)", i, rec[3], rec[4], rec[5])
		}
	}
}

func TestGenerator_DepthOne(t *testing.T) {
	a := Pt(-0.5, -0.5, 0)
	b := Pt(0, 0.5, 0)
	c := Pt(0.5, -0.5, 0)

	verts := Sierpinski(a, b, c, 1)
	if len(verts) != 12*VertexStride {
		t.Fatalf("depth 1 produced %d floats, want %d", len(verts), 12*VertexStride)
	}

	pos := func(i int) [3]float32 {
		rec := verts[i*VertexStride:]
		return [3]float32{rec[0], rec[1], rec[2]}
	}
	green := func(i int) float32 {
		return verts[i*VertexStride+4]
	}

	// Records 0..2: the root triangle at green 0.
	root := [][3]float32{{-0.5, -0.5, 0}, {0, 0.5, 0}, {0.5, -0.5, 0}}
	for i, want := range root {
		if pos(i) != want {
			t.Errorf("root vertex %d = %v, want %v", i, pos(i), want)
		}
		if green(i) != 0 {
			t.Errorf("root vertex %d green = %v, want 0", i, green(i))
		}
	}

	// Records 3..5: first child (a, ab, ac), visited before the b and c
	// branches. Midpoints of half-representable corners are exact.
	ab := [3]float32{-0.25, 0, 0}
	ac := [3]float32{0, -0.5, 0}
	bc := [3]float32{0.25, 0, 0}
	firstChild := [][3]float32{{-0.5, -0.5, 0}, ab, ac}
	for i, want := range firstChild {
		if pos(3+i) != want {
			t.Errorf("child vertex %d = %v, want %v", 3+i, pos(3+i), want)
		}
	}

	// Records 6..8: second child (b, ab, bc).
	secondChild := [][3]float32{{0, 0.5, 0}, ab, bc}
	for i, want := range secondChild {
		if pos(6+i) != want {
			t.Errorf("child vertex %d = %v, want %v", 6+i, pos(6+i), want)
		}
	}

	// Records 9..11: third child (c, ac, bc).
	thirdChild := [][3]float32{{0.5, -0.5, 0}, ac, bc}
	for i, want := range thirdChild {
		if pos(9+i) != want {
			t.Errorf("child vertex %d = %v, want %v", 9+i, pos(9+i), want)
		}
	}

	// Every leaf vertex is fully green.
	for i := 3; i < 12; i++ {
		if green(i) != 1 {
			t.Errorf("leaf vertex %d green = %v, want 1", i, green(i))
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a, b, c := RootTriangle()

	first := Sierpinski(a, b, c, 5)
	second := Sierpinski(a, b, c, 5)

	if len(first) != len(second) {
		t.Fatalf("stream lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("streams diverge at float %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestGenerator_Reuse(t *testing.T) {
	g := NewGenerator()
	a, b, c := RootTriangle()

	g.Generate(a, b, c, 3)
	if got := g.VertexCount(); got != 120 {
		t.Fatalf("first Generate: VertexCount() = %d, want 120", got)
	}

	// A second, shallower run must fully replace the first.
	verts := g.Generate(a, b, c, 1)
	if got := g.VertexCount(); got != 12 {
		t.Errorf("second Generate: VertexCount() = %d, want 12", got)
	}
	if len(verts) != 12*VertexStride {
		t.Errorf("second Generate returned %d floats, want %d", len(verts), 12*VertexStride)
	}
}

func TestGenerator_GreenEncodesDepth(t *testing.T) {
	const maxDepth = 4
	a, b, c := RootTriangle()
	verts := Sierpinski(a, b, c, maxDepth)

	for i := 0; i < len(verts); i += VertexStride {
		r, g, b := verts[i+3], verts[i+4], verts[i+5]
		if r != 0.25 || b != 0.75 {
			t.Fatalf("vertex %d: red/blue = %v/%v, want 0.25/0.75", i/VertexStride, r, b)
		}
		if g < 0 || g > 1 {
			t.Fatalf("vertex %d: green %v outside [0, 1]", i/VertexStride, g)
		}
		// green * maxDepth must recover an integral depth level.
		level := float64(g) * maxDepth
		if math.Abs(level-math.Round(level)) > 1e-6 {
			t.Fatalf("vertex %d: green %v does not encode an integral depth", i/VertexStride, g)
		}
	}

	// Each triangle's three vertices share one color.
	for i := 0; i+3*VertexStride <= len(verts); i += 3 * VertexStride {
		g0 := verts[i+4]
		if verts[i+VertexStride+4] != g0 || verts[i+2*VertexStride+4] != g0 {
			t.Fatalf("triangle at float %d has mixed greens", i)
		}
	}
}

func TestGenerator_DegenerateTriangle(t *testing.T) {
	// Coincident corners: still a structurally complete stream, just
	// zero-area geometry.
	p := Pt(0.5, 0.5, 0)
	verts := Sierpinski(p, p, p, 2)
	if len(verts) != 39*VertexStride {
		t.Fatalf("degenerate input produced %d floats, want %d", len(verts), 39*VertexStride)
	}
	for i := 0; i < len(verts); i += VertexStride {
		if verts[i] != 0.5 || verts[i+1] != 0.5 || verts[i+2] != 0 {
			t.Fatalf("vertex %d moved away from the coincident corner", i/VertexStride)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	g := NewGenerator()
	pa, pb, pc := RootTriangle()

	b.ReportAllocs()
	for b.Loop() {
		g.Generate(pa, pb, pc, DefaultMaxDepth)
	}
}

func BenchmarkGenerateShallow(b *testing.B) {
	g := NewGenerator()
	pa, pb, pc := RootTriangle()

	b.ReportAllocs()
	for b.Loop() {
		g.Generate(pa, pb, pc, 3)
	}
}
