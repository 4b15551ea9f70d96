package vecmath

import "github.com/chewxy/math32"

// Quat is a unit rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

var Identity = Quat{W: 1}

// AngleAxis returns the rotation of deg degrees about axis. The axis is
// normalized; a zero axis yields the identity rotation.
func AngleAxis(deg float32, axis Vec3) Quat {
	axis = axis.Normalize()
	if axis == Zero {
		return Identity
	}
	half := deg * Deg2Rad * 0.5
	s, c := math32.Sin(half), math32.Cos(half)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Basis is an orthonormal frame with columns Right, Up and Forward.
type Basis struct {
	Right, Up, Forward Vec3
}

// LookRotation builds a frame whose Forward axis points along forward and
// whose Up axis is as close to up as orthogonality allows. When the two are
// parallel a fallback up axis is chosen.
func LookRotation(forward, up Vec3) Basis {
	f := forward.Normalize()
	if f == Zero {
		f = Forward
	}
	r := up.Cross(f).Normalize()
	if r == Zero {
		alt := Up
		if math32.Abs(f.Y) > 0.99 {
			alt = Forward
		}
		r = alt.Cross(f).Normalize()
	}
	return Basis{Right: r, Up: f.Cross(r), Forward: f}
}

// Apply maps a local-space vector into the frame.
func (b Basis) Apply(v Vec3) Vec3 {
	return b.Right.Scale(v.X).Add(b.Up.Scale(v.Y)).Add(b.Forward.Scale(v.Z))
}
