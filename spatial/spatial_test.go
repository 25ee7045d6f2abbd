package spatial

import (
	"math"
	"testing"
)

func TestVector3Basics(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, 5, 6}

	if got := a.Add(b); got != (Vector3{5, 7, 9}) {
		t.Fatalf("Add: got %v", got)
	}
	if got := b.Sub(a); got != (Vector3{3, 3, 3}) {
		t.Fatalf("Sub: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Fatalf("Dot: got %v, want 32", got)
	}
	cross := a.Cross(b)
	want := Vector3{2*6 - 3*5, 3*4 - 1*6, 1*5 - 2*4}
	if cross != want {
		t.Fatalf("Cross: got %v, want %v", cross, want)
	}
	if math.Abs(Vector3{3, 4, 0}.Norm()-5) > 1e-15 {
		t.Fatalf("Norm: got %v, want 5", Vector3{3, 4, 0}.Norm())
	}
}

func TestRotationOrthogonality(t *testing.T) {
	for _, rot := range []Matrix3{
		RotationX(0.7), RotationY(-1.2), RotationZ(2.5),
	} {
		product := rot.Transpose().Mul(rot)
		diff := product.Sub(Identity3)
		if diff.FrobeniusNorm() > 1e-12 {
			t.Fatalf("rotation not orthogonal, frobenius error %v", diff.FrobeniusNorm())
		}
	}
}

func TestRotationZIdentityAtZero(t *testing.T) {
	m := RotationZ(0)
	if m.Sub(Identity3).FrobeniusNorm() > 1e-15 {
		t.Fatalf("RotationZ(0) should be identity, got %v", m)
	}
}
