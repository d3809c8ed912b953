package canon

// MoveCategory classifies a proposed move by which axis groups are in
// motion. This replaces the source's cartesian_move/angular_move side
// channel (see DESIGN.md) with a value returned directly from the envelope
// calculation and threaded explicitly to the message builder.
type MoveCategory int

const (
	CategoryLinear MoveCategory = iota
	CategoryRotary
	CategoryCombined
)

// envelope is the result of a kinematic feasibility computation: the
// move's category, its uncapped per-axis-governed velocity (ini_maxvel),
// the feed-rate-clamped velocity, and the governing acceleration.
type envelope struct {
	Category MoveCategory
	IniMaxVel float64
	Vel       float64
	Acc       float64
}

// unitRatio returns the external-units-per-internal-unit ratio for the
// given axis: the angular ratio for a,b,c, the linear ratio otherwise.
func (cfg *MachineConfig) unitRatio(axis int) float64 {
	if axis >= AxisA && axis <= AxisC {
		return cfg.AngularUnitRatio
	}
	return cfg.LinearUnitRatio
}

// governingTime computes the maximum, over all nine axes, of the time
// needed to cover that axis's delta at the per-axis limit selected by
// limit (a function from axis index to an external-units limit). Axes
// with a zero delta contribute zero and cannot govern. This single
// parameterised routine serves both the velocity and acceleration
// computations in envelopeFor, per the source's near-duplication of the
// two (see DESIGN.md).
func (s *Session) governingTime(delta [numAxes]float64, limit func(axis int) float64) float64 {
	var tMax float64
	for axis, d := range delta {
		if d == 0 {
			continue
		}
		extLimit := limit(axis)
		if extLimit <= 0 {
			continue
		}
		internalLimit := extLimit / s.config.unitRatio(axis)
		t := absf(d) / internalLimit
		if t > tMax {
			tMax = t
		}
	}
	return tMax
}

// envelopeFor computes the velocity/acceleration envelope for a proposed
// move from the current canonEndPoint to dest, both in internal absolute
// coordinates.
func (s *Session) envelopeFor(dest Pose9) envelope {
	delta := dest.Sub(s.canonEndPoint).Array()
	mask := s.config.AxisMask
	for axis := range delta {
		if !mask.Valid(axis) || absf(delta[axis]) < tiny {
			delta[axis] = 0
		}
	}

	cartesianMove := delta[AxisX] != 0 || delta[AxisY] != 0 || delta[AxisZ] != 0 ||
		delta[AxisU] != 0 || delta[AxisV] != 0 || delta[AxisW] != 0
	angularMove := delta[AxisA] != 0 || delta[AxisB] != 0 || delta[AxisC] != 0

	if !cartesianMove && !angularMove {
		e := envelope{Category: CategoryLinear, IniMaxVel: s.currentLinearFeedRate, Vel: s.currentLinearFeedRate, Acc: 0}
		s.traceVelAcc(delta, e)
		return e
	}

	var category MoveCategory
	switch {
	case cartesianMove && angularMove:
		category = CategoryCombined
	case cartesianMove:
		category = CategoryLinear
	default:
		category = CategoryRotary
	}

	var distance float64
	switch {
	case delta[AxisX] != 0 || delta[AxisY] != 0 || delta[AxisZ] != 0:
		distance = xyzDistance(poseFromArray(delta))
	case delta[AxisU] != 0 || delta[AxisV] != 0 || delta[AxisW] != 0:
		distance = uvwDistance(poseFromArray(delta))
	default:
		distance = abcDistance(poseFromArray(delta))
	}

	velTime := s.governingTime(delta, func(axis int) float64 { return s.config.Axes[axis].MaxVelocity })
	accTime := s.governingTime(delta, func(axis int) float64 { return s.config.Axes[axis].MaxAcceleration })

	var iniMaxVel, acc float64
	if velTime > 0 {
		iniMaxVel = distance / velTime
	}
	if accTime > 0 {
		acc = distance / accTime
	}

	var cap float64
	switch category {
	case CategoryRotary:
		cap = s.currentAngularFeedRate
	default:
		cap = s.currentLinearFeedRate
	}
	vel := iniMaxVel
	if cap > 0 && vel > cap {
		vel = cap
	}

	e := envelope{Category: category, IniMaxVel: iniMaxVel, Vel: vel, Acc: acc}
	s.traceVelAcc(delta, e)
	return e
}

// traceVelAcc logs the per-axis deltas feeding this envelope computation and
// its resulting velocity/acceleration, when velAccTraceEnabled is set. This
// is the structured replacement for the source's debug_velacc printf sites
// (emccanon.cc), per SPEC_FULL.md's debug velocity/acceleration tracing
// supplement.
func (s *Session) traceVelAcc(delta [numAxes]float64, e envelope) {
	if !s.velAccTraceEnabled {
		return
	}
	s.logger.Debug("velacc",
		"line", s.currentLine,
		"category", e.Category,
		"delta", delta,
		"iniMaxVel", e.IniMaxVel,
		"vel", e.Vel,
		"acc", e.Acc,
	)
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
