package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, FullAxisMask, cfg.AxisMask)
	require.Equal(t, 1.0, cfg.LinearUnitRatio)
	require.Equal(t, 1.0, cfg.AngularUnitRatio)
	require.Equal(t, 300.0, cfg.Axes[AxisX].MaxVelocity)
	require.Equal(t, 360.0, cfg.Axes[AxisA].MaxVelocity)
}

func TestLoadConfigPreservesSuppliedValues(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{"linear_unit_ratio": 0.0393701}`))
	require.NoError(t, err)
	require.InDelta(t, 1.0/25.4, cfg.LinearUnitRatio, 1e-6)
}

func TestLoadConfigRejectsInvalidJSON(t *testing.T) {
	_, err := LoadConfig([]byte(`not json`))
	require.Error(t, err)
}
