package canon

import "math"

// maxChainLength bounds the segment chain, matching the source's fixed
// buffer of chained points.
const maxChainLength = 100

// seeSegment is the naive-cam collapser's enqueue operation. p is an
// internal absolute destination pose; line is its originating part-program
// line. A point that changes any of a,b,c,u,v,w forces a flush both before
// (if unlinkable) and after insertion, since rotary/auxiliary moves cannot
// themselves participate in a future blend.
func (s *Session) seeSegment(p Pose9, line int) {
	changedAbcUvw := abcUvwChanged(p, s.canonEndPoint)

	if len(s.chain) > 0 && !s.linkable(p) {
		s.flush()
	}

	s.chain = append(s.chain, chainPoint{pose: p, line: line})

	if changedAbcUvw {
		s.flush()
	}
}

// abcUvwChanged reports whether p's rotary or auxiliary-linear members
// differ from ref's.
func abcUvwChanged(p, ref Pose9) bool {
	return p.A != ref.A || p.B != ref.B || p.C != ref.C ||
		p.U != ref.U || p.V != ref.V || p.W != ref.W
}

// linkable reports whether p may be absorbed into the current chain
// without breaking the naive-cam tolerance: motion mode must be
// CONTINUOUS with a positive tolerance, the chain must have room, p must
// share its rotary/auxiliary members with the chain's last point, p must
// actually move in {x,y,z} relative to canonEndPoint, and every existing
// chain point must lie within naivecamTolerance of the line segment from
// canonEndPoint to p.
func (s *Session) linkable(p Pose9) bool {
	if s.motionMode != MotionModeContinuous || s.naivecamTolerance <= 0 {
		return false
	}
	if len(s.chain) >= maxChainLength {
		return false
	}
	last := s.chain[len(s.chain)-1].pose
	if abcUvwChanged(p, last) {
		return false
	}
	if p.X == s.canonEndPoint.X && p.Y == s.canonEndPoint.Y && p.Z == s.canonEndPoint.Z {
		return false
	}
	for _, cp := range s.chain {
		if pointSegmentDistance(cp.pose, s.canonEndPoint, p) > s.naivecamTolerance {
			return false
		}
	}
	return true
}

// pointSegmentDistance computes the perpendicular distance from point to
// the line segment a-b, projecting point onto the segment and clamping the
// projection parameter to [0,1] before measuring the residual.
func pointSegmentDistance(point, a, b Pose9) float64 {
	abx, aby, abz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	apx, apy, apz := point.X-a.X, point.Y-a.Y, point.Z-a.Z

	segLenSq := abx*abx + aby*aby + abz*abz
	var t float64
	if segLenSq > 0 {
		t = (apx*abx + apy*aby + apz*abz) / segLenSq
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closestX := a.X + t*abx
	closestY := a.Y + t*aby
	closestZ := a.Z + t*abz

	dx, dy, dz := point.X-closestX, point.Y-closestY, point.Z-closestZ
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// flush commits the chain's last point as a single blended feed move and
// clears the chain. A no-op on an empty chain. Intermediate chain points
// only existed to prove the blend stayed within tolerance; they are
// discarded here.
func (s *Session) flush() {
	if len(s.chain) == 0 {
		return
	}
	last := s.chain[len(s.chain)-1]
	s.chain = nil

	env := s.envelopeFor(last.pose)

	if (env.Vel > 0 && env.Acc > 0) || s.feedSyncActive {
		s.queue.Append(LinearMove{
			baseMessage: baseMessage{Line: last.line},
			End:         toExtPose(last.pose, s.config.LinearUnitRatio, s.config.AngularUnitRatio),
			Vel:         env.Vel,
			IniMaxVel:   env.IniMaxVel,
			Acc:         env.Acc,
			FeedMode:    s.feedMode,
			MotionType:  MotionFeed,
		})
	}

	s.canonEndPoint = last.pose
}
