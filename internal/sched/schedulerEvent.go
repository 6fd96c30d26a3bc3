// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusArrive
	StatusDispatch
	StatusAge
	StatusFinish
	StatusFail
	StatusDeadlineMiss
)

// StatusEvent is emitted on every scheduling action and on idle ticks.
type StatusEvent struct {
	Tick     int64
	Kind     StatusKind
	TaskID   TaskID
	Priority int
	RanTicks int64
	Err      error
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusArrive:
		return "Arrive"
	case StatusDispatch:
		return "Dispatch"
	case StatusAge:
		return "Age"
	case StatusFinish:
		return "Finish"
	case StatusFail:
		return "Fail"
	case StatusDeadlineMiss:
		return "DeadlineMiss"
	default:
		return "Unknown"
	}
}
