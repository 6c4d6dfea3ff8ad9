package geomkit

import (
	"math"
	"testing"
)

func TestVectorBasics(t *testing.T) {
	a := Vector2D{X: 3, Y: 4}
	if n := Norm(a); math.Abs(n-5) > 1e-9 {
		t.Errorf("expected norm 5, got %v", n)
	}
	u := Unit(a)
	if math.Abs(Norm(u)-1) > 1e-9 {
		t.Errorf("expected unit length 1, got %v", Norm(u))
	}
}

func TestUnitOfZeroVector(t *testing.T) {
	z := Vector2D{}
	if u := Unit(z); u != z {
		t.Errorf("expected zero vector to map to itself, got %v", u)
	}
}

func TestCross(t *testing.T) {
	a := Vector2D{X: 1, Y: 0}
	b := Vector2D{X: 0, Y: 1}
	if c := Cross(a, b); math.Abs(c-1) > 1e-9 {
		t.Errorf("expected 1, got %v", c)
	}
}

func TestFromAngleAndAngle(t *testing.T) {
	v := FromAngle(math.Pi / 2)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("expected (0,1), got %v", v)
	}
	if a := Angle(Vector2D{X: 0, Y: 1}); math.Abs(a-math.Pi/2) > 1e-9 {
		t.Errorf("expected pi/2, got %v", a)
	}
}
