package canon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRotateAndOffsetRoundTrip(t *testing.T) {
	origin := Pose9{X: 10, Y: -5, Z: 2, A: 30}
	toolOffset := Pose9{Z: 1.5}
	xyRotation := 37.0

	cases := []Pose9{
		{X: 1, Y: 2, Z: 3, A: 4, B: 5, C: 6, U: 7, V: 8, W: 9},
		{},
		{X: -100, Y: 250.25, Z: -0.5},
	}

	for _, p := range cases {
		transformed := rotateAndOffset(p, xyRotation, origin, toolOffset)
		back := unoffsetAndUnrotate(transformed, xyRotation, origin, toolOffset)

		require.InDelta(t, p.X, back.X, 1e-9)
		require.InDelta(t, p.Y, back.Y, 1e-9)
		require.InDelta(t, p.Z, back.Z, 1e-9)
		require.InDelta(t, p.A, back.A, 1e-9)
		require.InDelta(t, p.U, back.U, 1e-9)
	}
}

func TestUnitRoundTrip(t *testing.T) {
	p := Pose9{X: 12.7, Y: -3.3, Z: 0.1, A: 90, U: 5}

	for _, u := range []LengthUnits{UnitsMM, UnitsInches, UnitsCM} {
		internal := fromProg(p, u)
		back := toProg(internal, u)

		if diff := cmp.Diff(p, back, cmp.Comparer(func(a, b float64) bool {
			d := a - b
			return d < 1e-9 && d > -1e-9
		})); diff != "" {
			t.Errorf("unit round trip mismatch for %v (-want +got):\n%s", u, diff)
		}
	}
}

func TestLengthFactor(t *testing.T) {
	require.Equal(t, 25.4, lengthFactor(UnitsInches))
	require.Equal(t, 10.0, lengthFactor(UnitsCM))
	require.Equal(t, 1.0, lengthFactor(UnitsMM))
}
