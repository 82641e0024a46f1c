package vector

import (
	"math"
	"testing"
)

// Vector module testing
func TestVecAdd(t *testing.T) {
	var x = Vec2{1.0, 1.0}
	var y = Vec2{1, 1}
	var eq = Vec2{2, 2}

	if !VecEquals(*x.Add(y), eq) {
		t.Errorf("Vector Addition failed %f", x[0])
	}
}

func TestVecDot(t *testing.T) {
	var x = Vec2{1, 2}
	var y = Vec2{1, 1}
	var eq = float32(3.0)

	if Dot(x, y) != eq || x.Dot(y) != eq {
		t.Errorf("Vector dot failed %f", x[0])
	}
}

func TestVector(t *testing.T) {
	x := NewVec2(2.0)
	y := NewDefaultVec2()

	a := Vec2{2, 2}
	b := Vec2{0, 0}

	if !x.equals(a) && !y.equals(b) {
		t.Error()
	}

	if !VecEquals(Scale(a, 2.0), Vec2{4.0, 4.0}) {
		t.Error()
	}
	if !VecEquals(Add(a, Vec2{2.0, 2.0}), Vec2{4.0, 4.0}) {
		t.Error()
	}

	if !isEpsilon(x.normalize().Length(), 1.0) {
		t.Errorf("Normalized vector error: Length(): %f, %f", x[0], x[1])
	}

	cr := Cross(Vec2{-2, -2}, Vec2{1, 2})
	if cr != -2 {
		t.Errorf("Cross %f", cr)
	}

	a = Vec2{2, 2}

	if Length(a) != float32(math.Sqrt(8)) {
		t.Errorf("Error Length")
	}

	if a.Length() != float32(math.Sqrt(8)) {
		t.Errorf("Error Length")
	}

	a = Vec2{2, 2}
	p := Vec2{0, 2}
	r := Proj(a, p)
	h := ProjPlane(a, p)

	if !VecEquals(r, Vec2{0, 2}) {
		t.Errorf("Error Projection %f %f", r[0], r[1])
	}

	if !VecEquals(h, Vec2{2, 0}) {
		t.Errorf("Error Proj Plane  %f %f", h[0], h[1])
	}

	if !VecEquals(*a.Proj(p), Vec2{0, 2}) {
		t.Errorf("Error Projection %f, %f", a[0], a[1])
	}

	p = Vec2{1, -1}
	o := Vec2{0, 1}

	if !VecEquals(*p.Reflect(o), Vec2{1, 1}) {
		t.Errorf("Error Reflection %f, %f", p[0], p[1])
	}
}

func BenchmarkVecOp(b *testing.B) {
	p := Vec2{1, -1}
	o := Vec2{0, 1}

	for i := 0; i < b.N; i++ {
		r := p.Add(o)
		Cross(*r, p)
		r.Proj(o)
		r.Add(o)
	}
}
