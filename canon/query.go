package canon

// GetPosition returns the current committed end point in program units,
// un-rotated and un-offset (i.e. in the program's own frame, not the
// machine-absolute frame canonEndPoint is stored in).
func (s *Session) GetPosition() Pose9 {
	return toProg(unoffsetAndUnrotate(s.canonEndPoint, s.xyRotation, s.programOrigin, s.toolOffset), s.lengthUnits)
}

// GetExternalLengthUnits returns the program-units-per-internal-mm ratio.
func (s *Session) GetExternalLengthUnits() float64 {
	return s.config.LinearUnitRatio
}

// GetExternalAngleUnits returns the program-units-per-internal-degree
// ratio.
func (s *Session) GetExternalAngleUnits() float64 {
	return s.config.AngularUnitRatio
}

// GetLengthUnitType returns the program's current length unit.
func (s *Session) GetLengthUnitType() LengthUnits {
	return s.lengthUnits
}

// GetToolOffset returns the current tool-length offset, in program units.
func (s *Session) GetToolOffset() Pose9 {
	return toProg(s.toolOffset, s.lengthUnits)
}

// GetAxisMask returns the configured axis presence bit mask.
func (s *Session) GetAxisMask() AxisMask {
	return s.config.AxisMask
}

// GetActivePlane returns the current arc-interpolation plane.
func (s *Session) GetActivePlane() Plane {
	return s.activePlane
}

// GetMotionControlMode returns the current motion mode and its tolerance.
func (s *Session) GetMotionControlMode() (MotionMode, float64) {
	return s.motionMode, s.motionTolerance
}

// GetNaivecamTolerance returns the current naive-cam collapse tolerance.
func (s *Session) GetNaivecamTolerance() float64 {
	return s.naivecamTolerance
}

// GetFeedRate returns the current linear feed rate, in program units per
// minute.
func (s *Session) GetFeedRate() float64 {
	return toProg(Pose9{X: s.currentLinearFeedRate * 60}, s.lengthUnits).X
}

// GetTraverseRate returns the current traverse rate, in program units per
// minute.
func (s *Session) GetTraverseRate() float64 {
	return toProg(Pose9{X: s.currentTraverseRate * 60}, s.lengthUnits).X
}

// GetFeedMode reports whether inverse-time/synchronised feed
// interpretation is active.
func (s *Session) GetFeedMode() bool {
	return s.feedMode
}

// QueueEmpty reports whether the segment chain has no pending points; it
// does not reflect the downstream Queue's own backlog, which this layer
// does not own.
func (s *Session) QueueEmpty() bool {
	return len(s.chain) == 0
}

// GetSpindleSpeed returns the last commanded spindle speed.
func (s *Session) GetSpindleSpeed() float64 {
	return s.spindleSpeed
}

// GetSelectedTool returns the last tool slot prepared via ToolChange.
func (s *Session) GetSelectedTool() int {
	return s.preppedTool
}

// The remaining accessors are stubs for hardware feedback this layer never
// receives: probing, digital/analog I/O, and override-enable state. They
// preserve the source's hard-coded constant returns (see DESIGN.md's open
// question note) rather than querying any real sensor.

// GetProbePosition returns the zero pose; no probe input reaches this
// layer.
func (s *Session) GetProbePosition() Pose9 { return Pose9{} }

// GetProbeTrippedValue always reports false.
func (s *Session) GetProbeTrippedValue() bool { return false }

// GetDigitalInput always reports false for any pin index.
func (s *Session) GetDigitalInput(pin int) bool { return false }

// GetAnalogInput always reports zero for any channel index.
func (s *Session) GetAnalogInput(channel int) float64 { return 0 }

// GetMistCoolant always reports false.
func (s *Session) GetMistCoolant() bool { return false }

// GetFloodCoolant always reports false.
func (s *Session) GetFloodCoolant() bool { return false }

// GetFeedOverrideEnable always reports false.
func (s *Session) GetFeedOverrideEnable() bool { return false }

// GetSpindleOverrideEnable always reports false.
func (s *Session) GetSpindleOverrideEnable() bool { return false }

// GetAdaptiveFeedEnable always reports false.
func (s *Session) GetAdaptiveFeedEnable() bool { return false }

// GetFeedHoldEnable always reports false.
func (s *Session) GetFeedHoldEnable() bool { return false }
