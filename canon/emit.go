package canon

// StraightTraverse flushes any pending chain, transforms dest from program
// to machine-absolute coordinates, computes its envelope, emits a
// TRAVERSE-type LinearMove, and commits the new end point. Feed-sync (if
// active) is suspended for the traverse and restored afterwards, matching
// the source's old_feed_mode save/restore around STRAIGHT_TRAVERSE.
func (s *Session) StraightTraverse(dest Pose9) {
	s.flush()

	target := rotateAndOffset(fromProg(dest, s.lengthUnits), s.xyRotation, s.programOrigin, s.toolOffset)
	env := s.envelopeFor(target)

	wasSyncing := s.feedSyncActive
	if wasSyncing {
		s.stopSpeedFeedSynch()
	}

	if env.Vel > 0 || env.Acc > 0 {
		s.queue.Append(LinearMove{
			baseMessage: baseMessage{Line: s.currentLine},
			End:         toExtPose(target, s.config.LinearUnitRatio, s.config.AngularUnitRatio),
			Vel:         env.Vel,
			IniMaxVel:   env.IniMaxVel,
			Acc:         env.Acc,
			FeedMode:    s.feedMode,
			MotionType:  MotionTraverse,
		})
	}

	if wasSyncing {
		s.startSpeedFeedSynch()
	}

	s.canonEndPoint = target
}

// StraightFeed transforms dest from program to machine-absolute
// coordinates and hands it to the naive-cam collapser.
func (s *Session) StraightFeed(dest Pose9) {
	target := rotateAndOffset(fromProg(dest, s.lengthUnits), s.xyRotation, s.programOrigin, s.toolOffset)
	s.seeSegment(target, s.currentLine)
}
