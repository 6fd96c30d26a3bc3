package sched

import "fmt"

// TaskID identifies a task. The queue never interprets it.
type TaskID uint64

// Priority bounds applied by NewTask and by aging.
const (
	MinPriority = 0
	MaxPriority = 40
)

// Task represents one schedulable task unit.
type Task struct {
	ID       TaskID
	Priority int   // 0 - 40, where 0 is the most urgent
	Arrival  int64 // tick at which the task becomes ready
	Deadline int64 // tick by which the task should have finished
}

// NewTask creates a new task with its priority clamped into
// [MinPriority, MaxPriority].
func NewTask(id TaskID, priority int, arrival, deadline int64) *Task {
	return &Task{
		ID:       id,
		Priority: clampPriority(priority),
		Arrival:  arrival,
		Deadline: deadline,
	}
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(ID=%d, Priority=%d)", t.ID, t.Priority)
}

// ByPriority reports whether a is more urgent than b.
// Equal priorities are not ordered, so ties leave the queue free to
// return either task first.
func ByPriority(a, b *Task) bool {
	return a.Priority < b.Priority
}

func clampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	} else if p > MaxPriority {
		return MaxPriority
	}
	return p
}
