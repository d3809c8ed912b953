package main

import (
	"encoding/json"
	"fmt"

	"canon/canon"
)

// operation is one entry in a JSON operation script: an op name plus
// whatever parameters that operation needs. This is deliberately not a
// G-code parser (that stays out of scope); it is a direct, literal
// encoding of canonical-layer calls for driving the session from a file.
type operation struct {
	Op        string  `json:"op"`
	Line      int     `json:"line"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	C         float64 `json:"c"`
	CenterX   float64 `json:"center_x"`
	CenterY   float64 `json:"center_y"`
	Rotation  int     `json:"rotation"`
	Rate      float64 `json:"rate"`
	Tolerance float64 `json:"tolerance"`
	Mode      string  `json:"mode"`
	Units     string  `json:"units"`
	Plane     string  `json:"plane"`
	Seconds   float64 `json:"seconds"`
	ControlPoints [][3]float64 `json:"control_points"`
	Order         int          `json:"order"`
}

func parseScript(data []byte) ([]operation, error) {
	var ops []operation
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("parsing operation script: %w", err)
	}
	return ops, nil
}

func parseLengthUnits(s string) canon.LengthUnits {
	switch s {
	case "inch", "inches":
		return canon.UnitsInches
	case "cm":
		return canon.UnitsCM
	default:
		return canon.UnitsMM
	}
}

func parsePlane(s string) canon.Plane {
	switch s {
	case "yz":
		return canon.PlaneYZ
	case "xz":
		return canon.PlaneXZ
	default:
		return canon.PlaneXY
	}
}

func parseMotionMode(s string) canon.MotionMode {
	if s == "continuous" {
		return canon.MotionModeContinuous
	}
	return canon.MotionModeExactStop
}

// runScript drives session through each operation in order, returning an
// error only for an unrecognised op name; every canonical operation itself
// is total per spec.md §7 and never returns an error.
func runScript(session *canon.Session, ops []operation) error {
	for _, op := range ops {
		session.SetLineNumber(op.Line)

		switch op.Op {
		case "init_canon":
			session.InitCanon()
		case "use_length_units":
			session.UseLengthUnits(parseLengthUnits(op.Units))
		case "select_plane":
			session.SelectPlane(parsePlane(op.Plane))
		case "set_feed_rate":
			session.SetFeedRate(op.Rate)
		case "set_traverse_rate":
			session.SetTraverseRate(op.Rate)
		case "set_motion_control_mode":
			session.SetMotionControlMode(parseMotionMode(op.Mode), op.Tolerance)
		case "set_naivecam_tolerance":
			session.SetNaivecamTolerance(op.Tolerance)
		case "set_origin_offsets":
			session.SetOriginOffsets(canon.Pose9{X: op.X, Y: op.Y, Z: op.Z, A: op.A, B: op.B, C: op.C})
		case "set_xy_rotation":
			session.SetXYRotation(op.Rate)
		case "set_tool_length_offset":
			session.SetToolLengthOffset(canon.Pose9{X: op.X, Y: op.Y, Z: op.Z})
		case "straight_traverse":
			session.StraightTraverse(canon.Pose9{X: op.X, Y: op.Y, Z: op.Z, A: op.A, B: op.B, C: op.C})
		case "straight_feed":
			session.StraightFeed(canon.Pose9{X: op.X, Y: op.Y, Z: op.Z, A: op.A, B: op.B, C: op.C})
		case "arc_feed":
			session.ArcFeed(canon.Pose9{X: op.X, Y: op.Y, Z: op.Z}, op.CenterX, op.CenterY, op.Rotation)
		case "nurbs_feed":
			pts := make([]canon.Pose9, len(op.ControlPoints))
			for i, p := range op.ControlPoints {
				pts[i] = canon.Pose9{X: p[0], Y: p[1], Z: p[2]}
			}
			session.NurbsFeed(pts, op.Order)
		case "dwell":
			session.Dwell(op.Seconds)
		case "spindle_speed":
			session.SetSpindleSpeed(op.Rate)
		case "spindle_start":
			session.SpindleStart(op.Rotation < 0)
		case "spindle_stop":
			session.SpindleStop()
		case "coolant_on":
			session.CoolantOn(op.Rotation != 0)
		case "coolant_off":
			session.CoolantOff()
		case "finish":
			session.Finish()
		default:
			return fmt.Errorf("unrecognised operation %q", op.Op)
		}
	}
	return nil
}
