package fractal

import "testing"

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2, 3)
	q := Pt(4, -2, 1)

	if got := p.Add(q); got != Pt(5, 0, 4) {
		t.Errorf("Add = %v, want (5, 0, 4)", got)
	}
	if got := p.Sub(q); got != Pt(-3, 4, 2) {
		t.Errorf("Sub = %v, want (-3, 4, 2)", got)
	}
	if got := p.Mul(2); got != Pt(2, 4, 6) {
		t.Errorf("Mul = %v, want (2, 4, 6)", got)
	}
	if got := p.Div(2); got != Pt(0.5, 1, 1.5) {
		t.Errorf("Div = %v, want (0.5, 1, 1.5)", got)
	}
}

func TestPointMidpoint(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want Point
	}{
		{"origin symmetric", Pt(-0.5, -0.5, 0), Pt(0.5, -0.5, 0), Pt(0, -0.5, 0)},
		{"apex edge", Pt(-0.5, -0.5, 0), Pt(0, 0.5, 0), Pt(-0.25, 0, 0)},
		{"identical points", Pt(0.25, 0.25, 0.25), Pt(0.25, 0.25, 0.25), Pt(0.25, 0.25, 0.25)},
		{"z component", Pt(0, 0, 1), Pt(0, 0, -0.5), Pt(0, 0, 0.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Halves of exactly representable values stay exact.
			if got := tt.p.Midpoint(tt.q); got != tt.want {
				t.Errorf("Midpoint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointMidpointCommutative(t *testing.T) {
	p := Pt(0.1, 0.2, 0.3)
	q := Pt(-0.7, 0.9, 0.4)
	if p.Midpoint(q) != q.Midpoint(p) {
		t.Errorf("Midpoint not commutative: %v vs %v", p.Midpoint(q), q.Midpoint(p))
	}
}

func TestPointLerp(t *testing.T) {
	p := Pt(0, 0, 0)
	q := Pt(1, 2, 4)

	if got := p.Lerp(q, 0); got != p {
		t.Errorf("Lerp(0) = %v, want %v", got, p)
	}
	if got := p.Lerp(q, 1); got != q {
		t.Errorf("Lerp(1) = %v, want %v", got, q)
	}
	if got := p.Lerp(q, 0.5); got != p.Midpoint(q) {
		t.Errorf("Lerp(0.5) = %v, want midpoint %v", got, p.Midpoint(q))
	}
}

func TestRootTriangle(t *testing.T) {
	a, b, c := RootTriangle()
	if a != Pt(-0.5, -0.5, 0) {
		t.Errorf("a = %v, want (-0.5, -0.5, 0)", a)
	}
	if b != Pt(0, 0.5, 0) {
		t.Errorf("b = %v, want (0, 0.5, 0)", b)
	}
	if c != Pt(0.5, -0.5, 0) {
		t.Errorf("c = %v, want (0.5, -0.5, 0)", c)
	}
}
