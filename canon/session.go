package canon

import (
	"log/slog"
	"math"
)

// MotionMode is the blend/exact-stop state machine driving naive-cam
// collapse. MotionModeUnset is the initial sentinel: neither valid mode,
// so the first SetMotionControlMode call always transmits.
type MotionMode int

const (
	MotionModeUnset MotionMode = iota
	MotionModeExactStop
	MotionModeContinuous
)

// System command indices for the fixed auxiliary operations, matching the
// canonical interface's conventional numbering.
const (
	CmdSpindleForward = 3
	CmdSpindleReverse = 4
	CmdSpindleStop    = 5
	CmdToolChange     = 6
	CmdCoolantMist    = 7
	CmdCoolantFlood   = 8
	CmdCoolantOff     = 9
)

type chainPoint struct {
	pose Pose9
	line int
}

// Session is the single owning container for canonical state: program
// origin, tool offset, XY rotation, units, active plane, feed mode and
// rates, motion mode and tolerances, the committed end point, and the
// pending segment chain. It is driven exclusively by one goroutine (the
// interpreter); only the Queue it feeds is shared with another thread.
type Session struct {
	config *MachineConfig
	queue  Queue
	logger *slog.Logger

	programOrigin Pose9
	toolOffset    Pose9
	xyRotation    float64
	lengthUnits   LengthUnits
	activePlane   Plane

	feedMode               bool
	feedSyncActive         bool
	currentLinearFeedRate  float64
	currentAngularFeedRate float64
	currentTraverseRate    float64

	motionMode        MotionMode
	motionTolerance   float64
	naivecamTolerance float64

	canonEndPoint Pose9

	spindleSpeed        float64
	cssMaximum          float64
	preppedTool         int
	optionalStopEnabled bool
	blockDeleteEnabled  bool

	velAccTraceEnabled bool
	currentLine        int

	chain []chainPoint
}

// NewSession constructs a Session against cfg and queue, then runs
// InitCanon to establish starting state.
func NewSession(cfg *MachineConfig, queue Queue) *Session {
	s := &Session{
		config: cfg,
		queue:  queue,
		logger: slog.Default(),
	}
	s.InitCanon()
	return s
}

// SetLogger replaces the session's diagnostic logger.
func (s *Session) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// SetVelAccTraceEnabled toggles per-axis velocity/acceleration tracing,
// supplementing the source's debug_velacc static flag (emccanon.cc) with
// structured slog.Debug records instead of printf.
func (s *Session) SetVelAccTraceEnabled(enabled bool) {
	s.velAccTraceEnabled = enabled
}

// SetLineNumber records the originating part-program line number for
// subsequent operations; it is stamped onto every message this session
// builds until changed again.
func (s *Session) SetLineNumber(n int) {
	s.currentLine = n
}

// InitCanon (re-)initialises all canonical state: zeroes origin and tool
// offset, selects plane XY, resets motion mode to its unset sentinel,
// derives length_units from the configured linear-unit ratio, and discards
// any pending segment chain.
func (s *Session) InitCanon() {
	s.chain = nil

	ratio := s.config.LinearUnitRatio
	switch {
	case math.Abs(ratio-1.0/25.4) <= 1e-3:
		s.lengthUnits = UnitsInches
	case math.Abs(ratio-1.0) <= 1e-3:
		s.lengthUnits = UnitsMM
	default:
		s.logger.Warn("non-standard linear unit ratio at init, forcing mm", "ratio", ratio)
		s.lengthUnits = UnitsMM
	}

	s.programOrigin = Pose9{}
	s.toolOffset = Pose9{}
	s.xyRotation = 0
	s.activePlane = PlaneXY
	s.feedMode = false
	s.feedSyncActive = false
	s.currentLinearFeedRate = 0
	s.currentAngularFeedRate = 0
	s.currentTraverseRate = 0
	// motionMode is left at the zero-value MotionModeUnset sentinel, not
	// MotionModeExactStop: the source's initial sentinel is neither valid
	// mode, which is what makes the first SetMotionControlMode call
	// transmit unconditionally (see SetMotionControlMode).
	s.motionMode = MotionModeUnset
	s.motionTolerance = 0
	s.naivecamTolerance = 0
	s.canonEndPoint = Pose9{}
	s.spindleSpeed = 0
	s.cssMaximum = 0
	s.preppedTool = 0
	s.optionalStopEnabled = false
	s.blockDeleteEnabled = false
	s.currentLine = 0
}

// Finish flushes any pending segment chain and emits a PlanEnd. Call once
// before process exit.
func (s *Session) Finish() {
	s.flush()
	s.queue.Append(PlanEnd{baseMessage{Line: s.currentLine}})
}

// CanonUpdateEndPoint directly resynchronises the committed end point
// without emitting a move, for interpreter line-skipping. Unlike the
// geometry operations it applies fromProg but not rotateAndOffset: the
// caller is expected to already supply absolute program-frame coordinates.
func (s *Session) CanonUpdateEndPoint(pose Pose9) {
	s.canonEndPoint = fromProg(pose, s.lengthUnits)
}

// SetOriginOffsets flushes, then sets the program origin (given in program
// units) as the new origin for subsequent rotate/offset transforms.
func (s *Session) SetOriginOffsets(origin Pose9) {
	s.flush()
	s.programOrigin = fromProg(origin, s.lengthUnits)
}

// SetToolLengthOffset flushes, then sets the tool offset (in program
// units) applied additively alongside the program origin.
func (s *Session) SetToolLengthOffset(offset Pose9) {
	s.flush()
	s.toolOffset = fromProg(offset, s.lengthUnits)
}

// SetXYRotation mutates the XY rotation angle (degrees) without flushing
// the segment chain. The source does not flush here either; this is
// preserved as documented behaviour, not fixed — see DESIGN.md.
func (s *Session) SetXYRotation(degrees float64) {
	s.xyRotation = degrees
}

// UseLengthUnits flushes, then switches the program length units used by
// fromProg/toProg.
func (s *Session) UseLengthUnits(u LengthUnits) {
	s.flush()
	s.lengthUnits = u
}

// SelectPlane flushes, then changes the active plane used by ArcFeed. Plane
// selection only affects arc interpretation, but as a non-feed command it
// still must leave the chain empty per the chain invariant.
func (s *Session) SelectPlane(p Plane) {
	s.flush()
	s.activePlane = p
}

// SetFeedMode flushes, then sets the feed-mode flag (true selects
// inverse-time/synchronised feed interpretation).
func (s *Session) SetFeedMode(synchronised bool) {
	s.flush()
	s.feedMode = synchronised
}

// SetFeedRate flushes only if the internal feed rate actually changes,
// then stores the new linear and angular feed rates (internal units per
// second) derived from rate, a program-units-per-minute value shared by
// both linear and angular moves per conventional per-minute feed mode.
func (s *Session) SetFeedRate(rate float64) {
	linear := fromProg(Pose9{X: rate}, s.lengthUnits).X / 60.0
	angular := rate / 60.0
	if linear != s.currentLinearFeedRate || angular != s.currentAngularFeedRate {
		s.flush()
	}
	s.currentLinearFeedRate = linear
	s.currentAngularFeedRate = angular
}

// SetTraverseRate flushes, then sets the traverse-only feed rate
// (emccanon.cc's SET_TRAVERSE_RATE, supplemented per SPEC_FULL.md).
func (s *Session) SetTraverseRate(rate float64) {
	s.flush()
	s.currentTraverseRate = fromProg(Pose9{X: rate}, s.lengthUnits).X / 60.0
}

// SetMotionControlMode flushes, then transitions the motion mode. The
// transition is reported to the queue as SetTermCond whenever the mode
// differs from the stored one — including the very first call, since
// MotionModeUnset matches neither valid mode.
func (s *Session) SetMotionControlMode(mode MotionMode, tolerance float64) {
	s.flush()
	if mode != s.motionMode {
		s.queue.Append(SetTermCond{
			baseMessage: baseMessage{Line: s.currentLine},
			Blend:       mode == MotionModeContinuous,
			Tolerance:   tolerance,
		})
	}
	s.motionMode = mode
	s.motionTolerance = tolerance
}

// SetNaivecamTolerance sets the perpendicular-deviation tolerance used by
// the segment chain's linkability test. It does not flush: future
// segments simply chain against the new tolerance.
func (s *Session) SetNaivecamTolerance(tolerance float64) {
	s.naivecamTolerance = tolerance
}

// SetSpindleSpeed flushes, then records the commanded spindle speed.
func (s *Session) SetSpindleSpeed(speed float64) {
	s.flush()
	s.spindleSpeed = speed
}

// SetSpindleMode flushes, then records cssMaximum. Per the open-question
// decision in DESIGN.md, the value is stored but never consumed by any
// retained code path, matching the source.
func (s *Session) SetSpindleMode(cssMaximum float64) {
	s.flush()
	s.cssMaximum = cssMaximum
}

// SetBlockDelete flushes, then records whether block-delete is honoured.
func (s *Session) SetBlockDelete(enabled bool) {
	s.flush()
	s.blockDeleteEnabled = enabled
}

// SetOptionalProgramStop flushes, then records whether an optional stop
// (M1) actually halts the program.
func (s *Session) SetOptionalProgramStop(enabled bool) {
	s.flush()
	s.optionalStopEnabled = enabled
}

// Dwell flushes, then emits a Delay for seconds.
func (s *Session) Dwell(seconds float64) {
	s.flush()
	s.queue.Append(Delay{baseMessage{Line: s.currentLine}, seconds})
}

// systemCommand flushes, then emits a SystemCmd with the given index and
// parameters. Used by the spindle, coolant, tool-change and user M-code
// operations; ProgramStop and Finish append PlanPause/PlanEnd directly.
func (s *Session) systemCommand(index int, p, q float64) {
	s.flush()
	s.queue.Append(SystemCmd{baseMessage{Line: s.currentLine}, index, p, q})
}

// SpindleStart issues a forward or reverse spindle-start command.
func (s *Session) SpindleStart(reverse bool) {
	idx := CmdSpindleForward
	if reverse {
		idx = CmdSpindleReverse
	}
	s.systemCommand(idx, s.spindleSpeed, 0)
}

// SpindleStop issues a spindle-stop command.
func (s *Session) SpindleStop() {
	s.systemCommand(CmdSpindleStop, 0, 0)
}

// CoolantOn issues a mist or flood coolant-on command.
func (s *Session) CoolantOn(flood bool) {
	idx := CmdCoolantMist
	if flood {
		idx = CmdCoolantFlood
	}
	s.systemCommand(idx, 0, 0)
}

// CoolantOff issues a coolant-off command.
func (s *Session) CoolantOff() {
	s.systemCommand(CmdCoolantOff, 0, 0)
}

// ToolChange issues a tool-change command for the given tool slot.
func (s *Session) ToolChange(slot int) {
	s.preppedTool = slot
	s.systemCommand(CmdToolChange, float64(slot), 0)
}

// ProgramStop flushes and emits a PlanPause.
func (s *Session) ProgramStop() {
	s.flush()
	s.queue.Append(PlanPause{baseMessage{Line: s.currentLine}})
}

// MCode issues a user-defined M-code with its P and Q parameters.
func (s *Session) MCode(index int, p, q float64) {
	s.systemCommand(index, p, q)
}

// startSpeedFeedSynch and stopSpeedFeedSynch are stubs for the source's
// spindle-sync operations (emccanon.cc START_SPEED_FEED_SYNCH/
// STOP_SPEED_FEED_SYNCH): they enqueue nothing and only set or clear
// feedSyncActive. They exist so StraightTraverse's suspend/restore logic
// has something to call, matching the original structure.
func (s *Session) startSpeedFeedSynch() {
	s.feedSyncActive = true
}

func (s *Session) stopSpeedFeedSynch() {
	s.feedSyncActive = false
}

// RigidTap logs a diagnostic and returns without enqueuing anything; rigid
// tapping is out of scope per spec.md §1.
func (s *Session) RigidTap(pose Pose9) {
	s.logger.Warn("rigid tap not implemented", "line", s.currentLine)
}

// StraightProbe logs a diagnostic and returns without enqueuing anything;
// probing hardware is out of scope per spec.md §1.
func (s *Session) StraightProbe(pose Pose9) {
	s.logger.Warn("straight probe not implemented", "line", s.currentLine)
}

// SetCutterRadiusCompensation, StartCutterRadiusCompensation, and
// StopCutterRadiusCompensation log and return; cutter-radius compensation
// is out of scope per spec.md §1.
func (s *Session) SetCutterRadiusCompensation(radius float64) {
	s.logger.Warn("cutter radius compensation not implemented", "line", s.currentLine)
}

func (s *Session) StartCutterRadiusCompensation(side int) {
	s.logger.Warn("cutter radius compensation not implemented", "line", s.currentLine)
}

func (s *Session) StopCutterRadiusCompensation() {
	s.logger.Warn("cutter radius compensation not implemented", "line", s.currentLine)
}
