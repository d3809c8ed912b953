package canon

import "math"

// LengthUnits is the program's interpretation of linear distances.
type LengthUnits int

const (
	UnitsMM LengthUnits = iota
	UnitsInches
	UnitsCM
)

// Plane identifies the active plane for arc interpolation.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneYZ
	PlaneXZ
)

// lengthFactor returns the internal-mm-per-program-unit scale factor for
// the given program length units: 25.4 for inches, 10 for centimetres,
// else 1 (millimetres).
func lengthFactor(u LengthUnits) float64 {
	switch u {
	case UnitsInches:
		return 25.4
	case UnitsCM:
		return 10.0
	default:
		return 1.0
	}
}

// fromProg scales a program-frame pose's linear members (x,y,z,u,v,w) into
// internal millimetres using the session's current length units; angular
// members (a,b,c) pass through unchanged.
func fromProg(p Pose9, u LengthUnits) Pose9 {
	f := lengthFactor(u)
	p.X *= f
	p.Y *= f
	p.Z *= f
	p.U *= f
	p.V *= f
	p.W *= f
	return p
}

// toProg is the inverse of fromProg.
func toProg(p Pose9, u LengthUnits) Pose9 {
	f := 1.0 / lengthFactor(u)
	p.X *= f
	p.Y *= f
	p.Z *= f
	p.U *= f
	p.V *= f
	p.W *= f
	return p
}

// toExtPose scales an internal pose into external units: linear members by
// linearRatio (external units per internal mm), angular members by
// angularRatio (external units per internal degree).
func toExtPose(p Pose9, linearRatio, angularRatio float64) Pose9 {
	p.X *= linearRatio
	p.Y *= linearRatio
	p.Z *= linearRatio
	p.U *= linearRatio
	p.V *= linearRatio
	p.W *= linearRatio
	p.A *= angularRatio
	p.B *= angularRatio
	p.C *= angularRatio
	return p
}

// fromExt is the inverse of toExtPose.
func fromExt(p Pose9, linearRatio, angularRatio float64) Pose9 {
	return toExtPose(p, 1.0/linearRatio, 1.0/angularRatio)
}

// rotate applies a 2-D rotation of (x,y) by degrees about the origin, using
// the standard counter-clockwise rotation matrix.
func rotate(x, y, degrees float64) (float64, float64) {
	r := degrees * math.Pi / 180.0
	s, c := math.Sin(r), math.Cos(r)
	return x*c - y*s, x*s + y*c
}

// rotateAndOffset applies the session's XY rotation to (x,y), then adds
// program origin and tool offset component-wise to all nine members. This
// is the program-frame-to-machine-frame transform.
func rotateAndOffset(p Pose9, xyRotation float64, origin, toolOffset Pose9) Pose9 {
	p.X, p.Y = rotate(p.X, p.Y, xyRotation)
	return p.Add(origin).Add(toolOffset)
}

// unoffsetAndUnrotate is the exact inverse of rotateAndOffset: subtract the
// offsets, then rotate by the negated angle.
func unoffsetAndUnrotate(p Pose9, xyRotation float64, origin, toolOffset Pose9) Pose9 {
	p = p.Sub(origin).Sub(toolOffset)
	p.X, p.Y = rotate(p.X, p.Y, -xyRotation)
	return p
}
