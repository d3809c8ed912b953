package canon

import "math"

// findSpan locates the knot span index containing u for a curve with n+1
// control points (indices 0..n), the given degree, and a non-decreasing
// knot vector.
func findSpan(n, degree int, u float64, knots []float64) int {
	if u >= knots[n+1] {
		return n
	}
	lo, hi := degree, n+1
	mid := (lo + hi) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
		mid = (lo + hi) / 2
	}
	return mid
}

// deBoor1D evaluates a single B-spline coordinate curve (Cox-de Boor) at
// parameter u.
func deBoor1D(ctrl []float64, knots []float64, degree int, u float64) float64 {
	n := len(ctrl) - 1
	span := findSpan(n, degree, u, knots)

	d := make([]float64, degree+1)
	for j := 0; j <= degree; j++ {
		d[j] = ctrl[span-degree+j]
	}
	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			left := knots[span-degree+j]
			right := knots[span+1+j-r]
			var alpha float64
			if right != left {
				alpha = (u - left) / (right - left)
			}
			d[j] = (1-alpha)*d[j-1] + alpha*d[j]
		}
	}
	return d[degree]
}

// uniformKnotVector returns the clamped (open) uniform knot vector of
// length n+k+1 for n+1 control points of order k (degree k-1): k zeros,
// then 1..n-k+1, then k copies of n-k+2. Its domain is [0, n-k+2] and the
// curve starts at the first control point and ends at the last.
func uniformKnotVector(n, k int) []float64 {
	knots := make([]float64, n+k+1)
	for i := range knots {
		switch {
		case i < k:
			knots[i] = 0
		case i <= n:
			knots[i] = float64(i - k + 1)
		default:
			knots[i] = float64(n - k + 2)
		}
	}
	return knots
}

// evalNurbs evaluates the x,y,z coordinates of the curve formed by ctrl
// (already in machine-absolute internal coordinates) at parameter u; the
// remaining six pose members are interpolated the same way so rotary and
// auxiliary travel still moves smoothly along the curve.
func evalNurbs(ctrl []Pose9, knots []float64, degree int, u float64) Pose9 {
	cols := make([][numAxes]float64, len(ctrl))
	for i, p := range ctrl {
		cols[i] = p.Array()
	}
	var out [numAxes]float64
	for axis := 0; axis < numAxes; axis++ {
		vals := make([]float64, len(ctrl))
		for i := range ctrl {
			vals[i] = cols[i][axis]
		}
		out[axis] = deBoor1D(vals, knots, degree, u)
	}
	return poseFromArray(out)
}

// biarcJoin solves the tangent-matching quadratic for the join point
// between two unit tangent directions t0 (at p0) and t1 (at p1), using the
// equal-arc (r=1) parametrisation. Returns ok=false when the discriminant
// is negative or no positive root exists, signalling a straight-segment
// fallback.
func biarcJoin(p0, p1, t0, t1 [2]float64) (join [2]float64, ok bool) {
	d := [2]float64{p1[0] - p0[0], p1[1] - p0[1]}
	qa := 2 * (1 - (t0[0]*t1[0] + t0[1]*t1[1]))
	qb := 2 * (d[0]*(t0[0]+t1[0]) + d[1]*(t0[1]+t1[1]))
	qc := -(d[0]*d[0] + d[1]*d[1])

	if math.Abs(qa) < 1e-12 {
		return join, false
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return join, false
	}
	sq := math.Sqrt(disc)
	beta1 := (-qb + sq) / (2 * qa)
	beta2 := (-qb - sq) / (2 * qa)

	best := -1.0
	for _, beta := range [2]float64{beta1, beta2} {
		if beta > 1e-9 && (best < 0 || beta < best) {
			best = beta
		}
	}
	if best < 0 {
		return join, false
	}
	return [2]float64{p0[0] + best*t0[0], p0[1] + best*t0[1]}, true
}

// circleThroughTangent solves for the circle tangent to t at p and passing
// through q, returning its signed radius (sign gives sweep direction: the
// circle's centre lies to the left of t when positive) and centre.
// Returns ok=false when p and q are colinear along t (infinite radius).
func circleThroughTangent(p, t, q [2]float64) (center [2]float64, signedRadius float64, ok bool) {
	n := [2]float64{-t[1], t[0]}
	e := [2]float64{q[0] - p[0], q[1] - p[1]}
	denom := 2 * (e[0]*n[0] + e[1]*n[1])
	if math.Abs(denom) < 1e-12 {
		return center, 0, false
	}
	r := (e[0]*e[0] + e[1]*e[1]) / denom
	center = [2]float64{p[0] + n[0]*r, p[1] + n[1]*r}
	return center, r, true
}

// NurbsFeed flushes any pending chain, then decomposes the control-point
// polygon (program-frame, order k) into a sequence of biarc approximations
// sampled along a uniform knot vector, emitting each resolved arc or its
// straight-segment fallback in turn.
func (s *Session) NurbsFeed(controlPoints []Pose9, order int) {
	s.flush()

	n := len(controlPoints) - 1
	k := order
	if n < 1 || k < 2 || n < k-1 {
		s.logger.Warn("nurbs_feed: degenerate control polygon", "points", len(controlPoints), "order", order)
		return
	}

	abs := make([]Pose9, len(controlPoints))
	for i, p := range controlPoints {
		abs[i] = rotateAndOffset(fromProg(p, s.lengthUnits), s.xyRotation, s.programOrigin, s.toolOffset)
	}

	knots := uniformKnotVector(n, k)
	degree := k - 1
	uMin, uMax := 0.0, float64(n-k+2)
	numSamples := 4 * (n + 1)

	type sample struct {
		pose    Pose9
		tangent [2]float64
	}
	samples := make([]sample, numSamples)
	du := (uMax - uMin) / float64(numSamples-1) / 100.0
	for i := 0; i < numSamples; i++ {
		u := uMin + (uMax-uMin)*float64(i)/float64(numSamples-1)
		samples[i].pose = evalNurbs(abs, knots, degree, u)

		uA, uB := u-du, u+du
		if uA < uMin {
			uA = uMin
		}
		if uB > uMax {
			uB = uMax
		}
		pa := evalNurbs(abs, knots, degree, uA)
		pb := evalNurbs(abs, knots, degree, uB)
		dx, dy := pb.X-pa.X, pb.Y-pa.Y
		mag := math.Hypot(dx, dy)
		if mag < 1e-12 {
			samples[i].tangent = [2]float64{1, 0}
		} else {
			samples[i].tangent = [2]float64{dx / mag, dy / mag}
		}
	}

	for i := 0; i+1 < numSamples; i++ {
		start, end := samples[i].pose, samples[i+1].pose
		t0, t1 := samples[i].tangent, samples[i+1].tangent
		s.emitBiarcSegment(start, end, t0, t1)
	}
}

// emitBiarcSegment resolves one biarc span between two already-absolute
// samples and emits it: two circular arcs when the tangent-matching
// construction succeeds, or a straight feed (via the naive-cam chain) when
// it degrades, matching the source's reuse of the straight-line fallback
// inside its arc() primitive.
func (s *Session) emitBiarcSegment(start, end Pose9, t0, t1 [2]float64) {
	p0 := [2]float64{start.X, start.Y}
	p1 := [2]float64{end.X, end.Y}

	join2D, ok := biarcJoin(p0, p1, t0, t1)
	if !ok {
		s.seeSegment(end, s.currentLine)
		return
	}

	zJoin := (start.Z + end.Z) / 2
	join := end
	join.X, join.Y, join.Z = join2D[0], join2D[1], zJoin

	center1, r1, ok1 := circleThroughTangent(p0, t0, join2D)
	center2, r2, ok2 := circleThroughTangent(p1, t1, join2D)
	if !ok1 || !ok2 {
		s.seeSegment(end, s.currentLine)
		return
	}

	s.emitResolvedArc(start, join, center1, r1)
	s.emitResolvedArc(join, end, center2, r2)
}

// emitResolvedArc emits a single already-geometrically-resolved planar arc
// (absolute internal coordinates, XY-plane center/radius with sign giving
// sweep direction) as a CircularMove, flushing any pending chain first.
func (s *Session) emitResolvedArc(start, end Pose9, center [2]float64, signedRadius float64) {
	s.flush()

	radius := math.Abs(signedRadius)
	rotation := 1
	if signedRadius < 0 {
		rotation = -1
	}

	theta1 := math.Atan2(start.Y-center[1], start.X-center[0])
	theta2 := adjustTheta2(theta1, math.Atan2(end.Y-center[1], end.X-center[0]), rotation)
	angle := theta2 - theta1

	startArr, endArr := start.Array(), end.Array()
	env := s.arcEnvelope(startArr, endArr, AxisX, AxisY, AxisZ, radius, angle)

	normal := [3]float64{0, 0, float64(rotation)}
	centerPose := start
	centerPose.X, centerPose.Y, centerPose.Z = center[0], center[1], start.Z
	extCenter := toExtPose(centerPose, s.config.LinearUnitRatio, s.config.AngularUnitRatio).Array()

	s.queue.Append(CircularMove{
		baseMessage: baseMessage{Line: s.currentLine},
		End:         toExtPose(end, s.config.LinearUnitRatio, s.config.AngularUnitRatio),
		Center:      [3]float64{extCenter[AxisX], extCenter[AxisY], extCenter[AxisZ]},
		Normal:      normal,
		Turn:        0,
		Vel:         env.Vel,
		IniMaxVel:   env.IniMaxVel,
		Acc:         env.Acc,
		FeedMode:    s.feedMode,
	})

	s.canonEndPoint = end
}
