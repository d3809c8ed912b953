// Package canon implements the canonical motion layer of an NC toolpath
// pipeline: the machine-independent interface between a G-code interpreter
// and a downstream trajectory planner.
//
// It performs four coupled jobs on every motion command: coordinate
// transformation between program, internal, and external frames; velocity
// and acceleration envelope computation from per-axis machine limits;
// naive-CAM segment chaining that collapses near-colinear feed moves into
// blended runs; and decomposition of arcs and NURBS curves into linear and
// circular motion messages.
//
// The package owns no hardware and drives no queue consumer; callers supply
// a MachineConfig and a Queue and drive a Session with the exported
// operations.
package canon
