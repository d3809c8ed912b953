package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExactStopDoesNotBlend(t *testing.T) {
	s, q := newTestSession()
	s.SetMotionControlMode(MotionModeExactStop, 0)
	s.SetFeedRate(600)

	s.StraightFeed(Pose9{X: 1})
	s.StraightFeed(Pose9{X: 2})
	s.Finish()

	var linear []LinearMove
	for _, m := range q.Messages() {
		if lm, ok := m.(LinearMove); ok {
			linear = append(linear, lm)
		}
	}
	require.Len(t, linear, 2, "EXACT_STOP mode must not blend feeds")
}

func TestQueryPositionInProgramUnits(t *testing.T) {
	cfg := DefaultMachineConfig()
	cfg.LinearUnitRatio = 1.0 / 25.4
	q := NewMemoryQueue()
	s := NewSession(cfg, q)

	require.Equal(t, UnitsInches, s.GetLengthUnitType())

	s.StraightFeed(Pose9{X: 1})
	s.Finish()

	pos := s.GetPosition()
	require.InDelta(t, 1.0, pos.X, 1e-9)
}

func TestInitCanonDerivesMM(t *testing.T) {
	cfg := DefaultMachineConfig()
	cfg.LinearUnitRatio = 1.0
	s := NewSession(cfg, NewMemoryQueue())
	require.Equal(t, UnitsMM, s.GetLengthUnitType())
}

func TestInitCanonForcesMMOnUnrecognisedRatio(t *testing.T) {
	cfg := DefaultMachineConfig()
	cfg.LinearUnitRatio = 3.7
	s := NewSession(cfg, NewMemoryQueue())
	require.Equal(t, UnitsMM, s.GetLengthUnitType())
}

func TestSetXYRotationDoesNotFlush(t *testing.T) {
	s, _ := newTestSession()
	s.SetMotionControlMode(MotionModeContinuous, 0.1)
	s.SetNaivecamTolerance(1.0)
	s.SetFeedRate(600)

	s.StraightFeed(Pose9{X: 1})
	require.NotEmpty(t, s.chain)

	s.SetXYRotation(45)
	require.NotEmpty(t, s.chain, "SET_XY_ROTATION must not flush, per the preserved source behaviour")
}

func TestFinishFlushesAndEmitsPlanEnd(t *testing.T) {
	s, q := newTestSession()
	s.SetMotionControlMode(MotionModeContinuous, 0.1)
	s.SetNaivecamTolerance(1.0)
	s.SetFeedRate(600)

	s.StraightFeed(Pose9{X: 1})
	s.Finish()

	msgs := q.Messages()
	require.NotEmpty(t, msgs)
	_, ok := msgs[len(msgs)-1].(PlanEnd)
	require.True(t, ok)
}

func TestMotionModeFirstTransmitUnconditional(t *testing.T) {
	s, q := newTestSession()
	s.SetMotionControlMode(MotionModeExactStop, 0)

	msgs := q.Messages()
	require.Len(t, msgs, 1)
	_, ok := msgs[0].(SetTermCond)
	require.True(t, ok, "the first SetMotionControlMode call must transmit, since the initial mode is the unset sentinel")
}

func TestStraightTraverseFlushesPendingChain(t *testing.T) {
	s, q := newTestSession()
	s.SetMotionControlMode(MotionModeContinuous, 0.1)
	s.SetNaivecamTolerance(1.0)
	s.SetFeedRate(600)

	s.StraightFeed(Pose9{X: 1})
	require.NotEmpty(t, s.chain)

	s.StraightTraverse(Pose9{X: 5})
	require.Empty(t, s.chain)

	var traverse *LinearMove
	for _, m := range q.Messages() {
		if lm, ok := m.(LinearMove); ok && lm.MotionType == MotionTraverse {
			lm := lm
			traverse = &lm
		}
	}
	require.NotNil(t, traverse)
	require.InDelta(t, 5.0, traverse.End.X, 1e-9)
}
