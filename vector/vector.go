package vector

import (
	"fmt"
	"math"
)

// Describes the 2-D vector construct used throughout the fluid core.
// All free functions are immutable; pointer methods mutate the receiver.

// Vec2 is the default 2-D vector implementation.
type Vec2 [2]float32

// NewVec2 returns a vector with both components set to a.
func NewVec2(a float32) *Vec2 {
	return &Vec2{a, a}
}

// NewDefaultVec2 returns the zero vector.
func NewDefaultVec2() *Vec2 {
	return &Vec2{0, 0}
}

func Abs(a Vec2) Vec2 {
	a[0] = float32(math.Abs(float64(a[0])))
	a[1] = float32(math.Abs(float64(a[1])))
	return a
}

func Dot(a, b Vec2) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

func (v *Vec2) Dot(b Vec2) float32 {
	return v[0]*b[0] + v[1]*b[1]
}

// Scale returns v scaled by a.
func Scale(v Vec2, a float32) Vec2 {
	return Vec2{v[0] * a, v[1] * a}
}

func (v *Vec2) Scale(a float32) *Vec2 {
	v[0] *= a
	v[1] *= a
	return v
}

func (v *Vec2) Clear() *Vec2 {
	v[0] = 0
	v[1] = 0
	return v
}

func Add(v, b Vec2) Vec2 {
	return Vec2{v[0] + b[0], v[1] + b[1]}
}

func Sub(v, b Vec2) Vec2 {
	return Vec2{v[0] - b[0], v[1] - b[1]}
}

func (v *Vec2) Add(b Vec2) *Vec2 {
	v[0] += b[0]
	v[1] += b[1]
	return v
}

func (v *Vec2) Sub(b Vec2) *Vec2 {
	v[0] -= b[0]
	v[1] -= b[1]
	return v
}

// Cross returns the scalar (z-component) of the 2-D cross product.
func Cross(a, b Vec2) float32 {
	return a[0]*b[1] - a[1]*b[0]
}

func LengthSqr(a Vec2) float32 {
	return a[0]*a[0] + a[1]*a[1]
}

func Length(a Vec2) float32 {
	return float32(math.Sqrt(float64(LengthSqr(a))))
}

func (v *Vec2) LengthSqr() float32 {
	return v[0]*v[0] + v[1]*v[1]
}

func (v *Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSqr())))
}

// normalize mutates v to unit length; logs and leaves v unchanged for the zero vector.
func (v *Vec2) normalize() *Vec2 {
	l := v.Length()
	if l != 0 {
		v[0] /= l
		v[1] /= l
	} else {
		fmt.Printf("Error Normalization of Zero Vector\n")
	}
	return v
}

func Normalize(a Vec2) Vec2 {
	v := Vec2{}
	l := Length(a)
	if l != 0 {
		v[0] = a[0] / l
		v[1] = a[1] / l
	}
	return v
}

// Proj produces the projection of a onto the arbitrary vector n.
func Proj(a, n Vec2) Vec2 {
	vn := Normalize(n)
	return Scale(vn, Dot(a, n)/Length(n))
}

// ProjPlane projects a onto the plane normal to n.
func ProjPlane(a, n Vec2) Vec2 {
	return Sub(a, Proj(a, n))
}

func (v *Vec2) Proj(n Vec2) *Vec2 {
	x := Proj(*v, n)
	v[0] = x[0]
	v[1] = x[1]
	return v
}

func (v *Vec2) Reflect(n Vec2) *Vec2 {
	b := Scale(n, (Dot(n, *v)*2.0)/n.LengthSqr())
	r := Sub(*v, b)
	v[0] = r[0]
	v[1] = r[1]
	return v
}

func Reflect(n, v Vec2) Vec2 {
	b := Scale(n, (Dot(n, v)*2.0)/LengthSqr(n))
	return Sub(v, b)
}

func (v *Vec2) equals(a Vec2) bool {
	return v[0] == a[0] && v[1] == a[1]
}

func VecEquals(v, a Vec2) bool {
	return v[0] == a[0] && v[1] == a[1]
}

func Distance(a, b Vec2) float32 {
	return Length(Sub(a, b))
}

func (v *Vec2) Distance(a Vec2) float32 {
	return Length(Sub(*v, a))
}

// Tan returns the tangential component of a with respect to norm.
func Tan(a, norm Vec2) Vec2 {
	p := Proj(a, norm)
	return Sub(a, p)
}

func (v *Vec2) Tan_(norm Vec2) Vec2 {
	p := Proj(*v, norm)
	return Sub(*v, p)
}

func (v *Vec2) Tan(norm Vec2) {
	p := Proj(*v, norm)
	v.Sub(p)
}

func isEpsilon(a, b float32) bool {
	return math.Abs(float64(b-a)) <= 0.00000019
}

func (v *Vec2) String() string {
	return fmt.Sprintf("[ %f, %f]\n", v[0], v[1])
}
