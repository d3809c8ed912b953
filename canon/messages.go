package canon

import "sync"

// MotionType distinguishes the reason a LinearMove was emitted.
type MotionType int

const (
	MotionTraverse MotionType = iota
	MotionFeed
	MotionArc
)

// Message is the common interface satisfied by every downstream queue
// entry; LineNumber identifies the originating part-program line.
type Message interface {
	LineNumber() int
}

type baseMessage struct {
	Line int
}

func (b baseMessage) LineNumber() int { return b.Line }

// LinearMove is a straight motion command: the destination pose (external
// units), the feed-rate-clamped velocity, the uncapped per-axis-governed
// velocity, the acceleration, the feed mode in effect, and whether this
// move originated as a traverse, a feed, or a degenerate (zero-rotation)
// arc.
type LinearMove struct {
	baseMessage
	End        Pose9
	Vel        float64
	IniMaxVel  float64
	Acc        float64
	FeedMode   bool
	MotionType MotionType
}

// CircularMove is an arc motion command: destination, centre and plane
// normal (both three-dimensional, in external units), the turn count, and
// the same velocity/acceleration/feed-mode fields as LinearMove.
type CircularMove struct {
	baseMessage
	End       Pose9
	Center    [3]float64
	Normal    [3]float64
	Turn      int
	Vel       float64
	IniMaxVel float64
	Acc       float64
	FeedMode  bool
}

// Delay is a DWELL command: pause for Seconds before the next move starts.
type Delay struct {
	baseMessage
	Seconds float64
}

// SetTermCond reports a motion-mode transition to the planner: whether
// blending (continuous) is now in effect, and the path-following tolerance.
type SetTermCond struct {
	baseMessage
	Blend     bool
	Tolerance float64
}

// SystemCmd is a generic auxiliary command: spindle/coolant/tool-change and
// user M-codes all reduce to an index plus two optional parameters.
type SystemCmd struct {
	baseMessage
	Index int
	P, Q  float64
}

// PlanPause and PlanEnd carry no payload beyond the line number.
type PlanPause struct{ baseMessage }
type PlanEnd struct{ baseMessage }

// Queue is the downstream motion-command sink. It is presumed shared with
// a consumer thread (the trajectory planner) and so must synchronise its
// own Append; the canonical layer holds no lock across a computation and
// calls Append only with a fully built Message.
type Queue interface {
	Append(Message)
}

// MemoryQueue is a synchronised in-process Queue, useful for tests and the
// demo CLI where no external planner is attached.
type MemoryQueue struct {
	mu       sync.Mutex
	messages []Message
}

// NewMemoryQueue returns an empty MemoryQueue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

// Append adds msg to the queue under the queue's own lock.
func (q *MemoryQueue) Append(msg Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, msg)
}

// Messages returns a snapshot copy of everything appended so far, in order.
func (q *MemoryQueue) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Message, len(q.messages))
	copy(out, q.messages)
	return out
}

// Len reports how many messages are currently queued.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}
