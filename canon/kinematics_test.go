package canon

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeZeroMotion(t *testing.T) {
	s, _ := newTestSession()
	s.currentLinearFeedRate = 5
	env := s.envelopeFor(s.canonEndPoint)

	require.Equal(t, 5.0, env.Vel)
	require.Equal(t, 0.0, env.Acc)
}

func TestEnvelopeFeedClamp(t *testing.T) {
	s, _ := newTestSession()
	s.config.Axes[AxisX] = AxisLimits{MaxVelocity: 1000, MaxAcceleration: 1000}
	s.currentLinearFeedRate = 10

	env := s.envelopeFor(Pose9{X: 100})

	require.LessOrEqual(t, env.Vel, s.currentLinearFeedRate+1e-9)
	require.LessOrEqual(t, env.Vel, env.IniMaxVel+1e-9)
	require.Equal(t, CategoryLinear, env.Category)
}

func TestEnvelopeCombinedCategory(t *testing.T) {
	s, _ := newTestSession()
	s.currentLinearFeedRate = 1000
	env := s.envelopeFor(Pose9{X: 10, A: 10})
	require.Equal(t, CategoryCombined, env.Category)
}

func TestEnvelopeRotaryCategory(t *testing.T) {
	s, _ := newTestSession()
	s.currentAngularFeedRate = 1000
	env := s.envelopeFor(Pose9{A: 45})
	require.Equal(t, CategoryRotary, env.Category)
}

func TestAxisMaskExcludesAxis(t *testing.T) {
	s, _ := newTestSession()
	s.config.AxisMask = FullAxisMask &^ (1 << AxisW)
	s.currentLinearFeedRate = 1000

	env := s.envelopeFor(Pose9{W: 50})
	require.Equal(t, 1000.0, env.IniMaxVel, "a masked-out axis's delta must be treated as zero, making this a zero-motion move at the feed rate")
	require.Equal(t, 0.0, env.Acc)
}

func TestVelAccTraceEmitsDebugWhenEnabled(t *testing.T) {
	s, _ := newTestSession()
	var buf bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s.SetVelAccTraceEnabled(true)
	s.currentLinearFeedRate = 100

	s.envelopeFor(Pose9{X: 10})

	require.True(t, strings.Contains(buf.String(), "velacc"), "enabling the trace must emit a velacc debug record")
}

func TestVelAccTraceSilentWhenDisabled(t *testing.T) {
	s, _ := newTestSession()
	var buf bytes.Buffer
	s.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	s.currentLinearFeedRate = 100

	s.envelopeFor(Pose9{X: 10})

	require.Empty(t, buf.String(), "tracing must stay silent unless explicitly enabled")
}
