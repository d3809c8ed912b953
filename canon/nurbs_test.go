package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNurbsFeedStraightLineDegeneratesToLinearMoves(t *testing.T) {
	s, q := newTestSession()
	s.SetFeedRate(600)

	controlPoints := []Pose9{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 2, Y: 0},
		{X: 3, Y: 0},
	}
	s.NurbsFeed(controlPoints, 3)
	s.Finish()

	msgs := q.Messages()
	require.NotEmpty(t, msgs)
	for _, m := range msgs {
		_, isCircular := m.(CircularMove)
		require.False(t, isCircular, "a collinear control polygon must never emit a circular move")
	}

	last := msgs[len(msgs)-2] // before the trailing PlanEnd
	lm, ok := last.(LinearMove)
	require.True(t, ok)
	require.InDelta(t, 0.0, lm.End.Y, 1e-6, "a collinear-on-X control polygon must keep Y at zero throughout")
}

func TestBiarcJoinDegeneratesOnParallelTangents(t *testing.T) {
	t0 := [2]float64{1, 0}
	t1 := [2]float64{1, 0}
	_, ok := biarcJoin([2]float64{0, 0}, [2]float64{5, 0}, t0, t1)
	require.False(t, ok, "parallel tangents along the chord must fall back to a straight segment")
}

func TestBiarcJoinResolvesForCurvedTangents(t *testing.T) {
	t0 := [2]float64{1, 0}
	t1 := [2]float64{0, 1}
	_, ok := biarcJoin([2]float64{0, 0}, [2]float64{1, 1}, t0, t1)
	require.True(t, ok)
}
