package canon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTurnMapping(t *testing.T) {
	cases := []struct {
		rotation, wantTurn int
	}{
		{2, 1},
		{1, 0},
		{-1, -1},
		{-2, -2},
	}

	for _, c := range cases {
		s, q := newTestSession()
		s.currentLinearFeedRate = 100
		s.config.Axes[AxisX] = AxisLimits{MaxVelocity: 1000, MaxAcceleration: 1000}
		s.config.Axes[AxisY] = AxisLimits{MaxVelocity: 1000, MaxAcceleration: 1000}

		s.ArcFeed(Pose9{X: 1, Y: 0}, 0.5, 0, c.rotation)

		var got *CircularMove
		for _, m := range q.Messages() {
			if cm, ok := m.(CircularMove); ok {
				cm := cm
				got = &cm
			}
		}
		require.NotNil(t, got, "rotation %d should emit a circular move", c.rotation)
		require.Equal(t, c.wantTurn, got.Turn)
	}
}

func TestZeroRotationEmitsLinearMove(t *testing.T) {
	s, q := newTestSession()
	s.currentLinearFeedRate = 100
	s.config.Axes[AxisX] = AxisLimits{MaxVelocity: 1000, MaxAcceleration: 1000}

	s.ArcFeed(Pose9{X: 1, Y: 0}, 0.5, 0, 0)

	msgs := q.Messages()
	require.Len(t, msgs, 1)
	lm, ok := msgs[0].(LinearMove)
	require.True(t, ok)
	require.Equal(t, MotionArc, lm.MotionType)
}

func TestChordDeviationShortcutCollapsesIntoChain(t *testing.T) {
	s, q := newTestSession()
	s.SetMotionControlMode(MotionModeContinuous, 0.1)
	s.SetNaivecamTolerance(1.0)
	s.SetFeedRate(600)

	// A very large radius arc has a tiny sagitta, well under tolerance.
	// center (0,-1000), start (0,0): radius 1000; end is a small-angle
	// clockwise sweep away from start along the same circle, so the arc is
	// fed with a negative rotation.
	theta := 0.001
	end := Pose9{X: 1000 * math.Sin(theta), Y: -1000 + 1000*math.Cos(theta)}
	s.ArcFeed(end, 0, -1000, -1)
	s.Finish()

	for _, m := range q.Messages() {
		_, isCircular := m.(CircularMove)
		require.False(t, isCircular, "a low-deviation arc should collapse into straight segments, not emit a circular move")
	}
}

func TestChordDeviationFormula(t *testing.T) {
	radius := 10.0
	theta1 := 0.0
	theta2 := math.Pi / 2
	got := chordDeviation(radius, theta1, theta2)
	want := radius * (1 - math.Cos(math.Pi/4))
	require.InDelta(t, want, got, 1e-9)
}

func TestAdjustTheta2NearTwoPi(t *testing.T) {
	theta1 := math.Pi - 0.001
	theta2 := -math.Pi + 0.001
	adjusted := adjustTheta2(theta1, theta2, 1)
	require.Greater(t, adjusted, theta1)
}
