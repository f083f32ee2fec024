package geometry

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/aretw0/kinetree/pkg/domain"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a 4x4 homogeneous transform. The upper-left 3x3 block holds the frame axes
// as columns (X, Y, Z), the last column holds the origin, the bottom row is [0 0 0 1].
type Transform struct {
	m [4][4]float64
}

// Identity returns the identity transform.
func Identity() Transform {
	var t Transform
	for i := 0; i < 4; i++ {
		t.m[i][i] = 1
	}
	return t
}

// FromAxes assembles a transform from its three axis columns and its origin.
func FromAxes(x, y, z, origin r3.Vec) Transform {
	t := Identity()
	for j, c := range []r3.Vec{x, y, z, origin} {
		t.m[0][j] = c.X
		t.m[1][j] = c.Y
		t.m[2][j] = c.Z
	}
	return t
}

// FromRows builds a transform from row-major values. No rigidity check is done here;
// see CheckRigid.
func FromRows(rows [4][4]float64) Transform {
	return Transform{m: rows}
}

// Translation returns a pure translation.
func Translation(p r3.Vec) Transform {
	return FromAxes(r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}, p)
}

// Rows returns the row-major values.
func (t Transform) Rows() [4][4]float64 { return t.m }

// At returns element (i, j).
func (t Transform) At(i, j int) float64 { return t.m[i][j] }

// Column returns the first three components of column j.
func (t Transform) Column(j int) r3.Vec {
	return r3.Vec{X: t.m[0][j], Y: t.m[1][j], Z: t.m[2][j]}
}

// Axis returns the frame axis with the given name.
func (t Transform) Axis(name domain.AxisName) r3.Vec {
	return t.Column(name.Index())
}

// Origin returns the translation column.
func (t Transform) Origin() r3.Vec { return t.Column(3) }

// Rotation returns the 3x3 rotation block.
func (t Transform) Rotation() [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = t.m[i][j]
		}
	}
	return r
}

func (t Transform) dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		data = append(data, t.m[i][:]...)
	}
	return mat.NewDense(4, 4, data)
}

// Mul returns t·o.
func (t Transform) Mul(o Transform) Transform {
	var out mat.Dense
	out.Mul(t.dense(), o.dense())
	var r Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.m[i][j] = out.At(i, j)
		}
	}
	return r
}

// Inverse returns the inverse of a rigid transform: [Rᵀ, -Rᵀt].
func (t Transform) Inverse() Transform {
	inv := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv.m[i][j] = t.m[j][i]
		}
	}
	origin := t.Origin()
	for i := 0; i < 3; i++ {
		inv.m[i][3] = -(inv.m[i][0]*origin.X + inv.m[i][1]*origin.Y + inv.m[i][2]*origin.Z)
	}
	return inv
}

// Apply maps a point through the transform.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: t.m[0][0]*p.X + t.m[0][1]*p.Y + t.m[0][2]*p.Z + t.m[0][3],
		Y: t.m[1][0]*p.X + t.m[1][1]*p.Y + t.m[1][2]*p.Z + t.m[1][3],
		Z: t.m[2][0]*p.X + t.m[2][1]*p.Y + t.m[2][2]*p.Z + t.m[2][3],
	}
}

// Det returns the determinant of the rotation block.
func (t Transform) Det() float64 {
	r := t.Rotation()
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		data = append(data, r[i][:]...)
	}
	return mat.Det(mat.NewDense(3, 3, data))
}

// CheckRigid verifies unit, mutually orthogonal axes, determinant +1 and the homogeneous
// bottom row, within tol.
func (t Transform) CheckRigid(tol float64) error {
	for j := 0; j < 3; j++ {
		if n := r3.Norm(t.Column(j)); math.Abs(n-1) > tol {
			return fmt.Errorf("axis %d has length %g", j, n)
		}
		for k := j + 1; k < 3; k++ {
			if d := r3.Dot(t.Column(j), t.Column(k)); math.Abs(d) > tol {
				return fmt.Errorf("axes %d and %d are not orthogonal (dot %g)", j, k, d)
			}
		}
	}
	if d := t.Det(); math.Abs(d-1) > tol {
		return fmt.Errorf("rotation determinant is %g", d)
	}
	want := [4]float64{0, 0, 0, 1}
	for j, w := range want {
		if math.Abs(t.m[3][j]-w) > tol {
			return fmt.Errorf("bottom row is %v", t.m[3])
		}
	}
	return nil
}

// ApproxEqual compares two transforms element-wise.
func (t Transform) ApproxEqual(o Transform, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(t.m[i][j]-o.m[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// EulerXYZ returns the angles (radians) of the rotation decomposed as Rx·Ry·Rz.
func (t Transform) EulerXYZ() r3.Vec {
	sy := math.Max(-1, math.Min(1, t.m[0][2]))
	return r3.Vec{
		X: math.Atan2(-t.m[1][2], t.m[2][2]),
		Y: math.Asin(sy),
		Z: math.Atan2(-t.m[0][1], t.m[0][0]),
	}
}

func (t Transform) String() string {
	return fmt.Sprintf("%v", t.m)
}

// MarshalJSON encodes the transform as its four rows.
func (t Transform) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.m)
}

// UnmarshalJSON decodes four rows.
func (t *Transform) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &t.m)
}

// MarshalYAML encodes the transform as its four rows.
func (t Transform) MarshalYAML() (any, error) {
	rows := make([][]float64, 4)
	for i := range rows {
		rows[i] = t.m[i][:]
	}
	return rows, nil
}
