package canon

import "encoding/json"

// AxisLimits carries the per-axis kinematic limits supplied by the host
// machine-configuration source, in external units.
type AxisLimits struct {
	MaxVelocity     float64 `json:"max_velocity"`
	MaxAcceleration float64 `json:"max_acceleration"`
}

// MachineConfig is the read-only configuration contract required from the
// host: per-axis velocity/acceleration limits, axis presence, and the
// external unit ratios.
type MachineConfig struct {
	Axes             [numAxes]AxisLimits `json:"axes"`
	AxisMask         AxisMask            `json:"axis_mask"`
	LinearUnitRatio  float64             `json:"linear_unit_ratio"`  // program units per internal mm
	AngularUnitRatio float64             `json:"angular_unit_ratio"` // program units per internal degree
}

// LoadConfig parses a JSON machine configuration and applies defaults to
// any field left at its zero value, mirroring the teacher's
// config-then-defaults loading shape.
func LoadConfig(data []byte) (*MachineConfig, error) {
	var cfg MachineConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// applyConfigDefaults fills in missing configuration values with sensible
// defaults: a full nine-axis mask, 1:1 unit ratios (program units == mm/deg),
// and generous linear/rotary limits for any axis left unconfigured.
func applyConfigDefaults(cfg *MachineConfig) {
	if cfg.AxisMask == 0 {
		cfg.AxisMask = FullAxisMask
	}
	if cfg.LinearUnitRatio == 0 {
		cfg.LinearUnitRatio = 1.0
	}
	if cfg.AngularUnitRatio == 0 {
		cfg.AngularUnitRatio = 1.0
	}
	for i := range cfg.Axes {
		if cfg.Axes[i].MaxVelocity == 0 {
			if i >= AxisA && i <= AxisC {
				cfg.Axes[i].MaxVelocity = 360.0 // deg/s
			} else {
				cfg.Axes[i].MaxVelocity = 300.0 // mm/s
			}
		}
		if cfg.Axes[i].MaxAcceleration == 0 {
			if i >= AxisA && i <= AxisC {
				cfg.Axes[i].MaxAcceleration = 3600.0
			} else {
				cfg.Axes[i].MaxAcceleration = 3000.0
			}
		}
	}
}

// DefaultMachineConfig returns a configuration with every axis present and
// generous limits, suitable for tests and the demo CLI.
func DefaultMachineConfig() *MachineConfig {
	cfg := &MachineConfig{AxisMask: FullAxisMask}
	applyConfigDefaults(cfg)
	return cfg
}
