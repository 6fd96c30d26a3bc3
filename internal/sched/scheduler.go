// internal/sched/scheduler.go

package sched

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	cerrors "cloudeng.io/errors"
	"github.com/emirpasic/gods/trees/redblacktree"

	"taskheap/internal/job"
)

// ErrTickLimit is returned by Run when the configured number of ticks
// elapses with tasks still pending.
var ErrTickLimit = errors.New("tick limit reached")

// Summary holds the outcome counters of a run.
type Summary struct {
	Completed  int
	Failed     int
	Missed     int   // tasks that finished after their deadline
	TotalWait  int64 // ticks between arrival and dispatch, summed
	Dispatched int
}

// MeanWait returns the average number of ticks a task waited for dispatch.
func (s Summary) MeanWait() float64 {
	if s.Dispatched == 0 {
		return 0
	}
	return float64(s.TotalWait) / float64(s.Dispatched)
}

// Scheduler simulates a non-preemptive priority scheduler on a logical
// clock. Pending tasks wait in an arrival tree until their arrival tick,
// then move to a PriorityQueue from which the most urgent one is
// dispatched. Tasks that wait long enough are aged towards MinPriority.
type Scheduler struct {
	agingTicks int64               // ticks of waiting per aging step, 0 disables aging
	agingStep  int                 // priority decrease applied per aging step
	maxTicks   int64               // run limit
	clock      *TickClock          // logical clock
	arrivals   *redblacktree.Tree  // pending tasks ordered by arrival tick and task ID
	ready      *PriorityQueue      // admitted tasks
	tasks      map[TaskID]*Task    // all tasks not yet dispatched
	work       map[TaskID]job.Work // work function per task
	aged       map[TaskID]int64    // aging steps already applied
	listeners  []func(StatusEvent) // optional event consumers
	summary    Summary

	// logging-related
	out       io.Writer
	csvFile   *os.File
	csvWriter *csv.Writer
}

// New creates a new Scheduler instance with the given configuration.
// Human readable event lines are written to out if it is non-nil.
func New(cfg Config, out io.Writer) *Scheduler {
	return &Scheduler{
		agingTicks: cfg.AgingTicks,
		agingStep:  cfg.AgingStep,
		maxTicks:   cfg.MaxTicks,
		clock:      NewTickClock(),
		arrivals:   redblacktree.NewWith(cmp),
		ready:      NewPriorityQueue(),
		tasks:      make(map[TaskID]*Task),
		work:       make(map[TaskID]job.Work),
		aged:       make(map[TaskID]int64),
		out:        out,
	}
}

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before Run().
func (s *Scheduler) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	if err := w.Write([]string{"tick", "event", "task_id", "priority", "ran_ticks", "error"}); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	s.csvFile = f
	s.csvWriter = w
	return nil
}

// OnEvent registers fn to be called for every event, in order.
func (s *Scheduler) OnEvent(fn func(StatusEvent)) {
	s.listeners = append(s.listeners, fn)
}

// Summary returns the counters accumulated so far.
func (s *Scheduler) Summary() Summary { return s.summary }

// Now returns the current tick.
func (s *Scheduler) Now() int64 { return s.clock.Count() }

// Add queues a task for admission at its arrival tick.
func (s *Scheduler) Add(t *Task, work job.Work) error {
	if work == nil {
		return fmt.Errorf("task %d has no work", t.ID)
	}
	if _, dup := s.tasks[t.ID]; dup {
		return fmt.Errorf("task %d already exists", t.ID)
	}
	s.arrivals.Put(nodeKey{arrival: t.Arrival, id: t.ID}, t)
	s.tasks[t.ID] = t
	s.work[t.ID] = work
	return nil
}

// AddSpecs adds a task for every spec: a burst, or work that fails with
// job.ErrFailed after FailAfter ticks when that is set. All specs are
// attempted and every failure is reported.
func (s *Scheduler) AddSpecs(specs []TaskSpec) error {
	errs := &cerrors.M{}
	for _, ts := range specs {
		t := NewTask(ts.ID, ts.Priority, ts.Arrival, ts.Deadline)
		work := job.Burst(ts.Burst)
		if ts.FailAfter > 0 {
			work = job.Failing(ts.FailAfter, job.ErrFailed)
		}
		errs.Append(s.Add(t, work))
	}
	return errs.Err()
}

// Pending returns the IDs of tasks not yet dispatched: ready tasks in
// queue order followed by waiting arrivals in arrival order.
func (s *Scheduler) Pending() []TaskID {
	ids := make([]TaskID, 0, len(s.tasks))
	for _, t := range s.ready.Tasks() {
		ids = append(ids, t.ID)
	}
	for _, v := range s.arrivals.Values() {
		ids = append(ids, v.(*Task).ID)
	}
	return ids
}

// Run dispatches tasks until none are left, the tick limit is reached or
// ctx is done. Failures to write the CSV event log are reported once the
// run ends.
func (s *Scheduler) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := s.closeCSV(); cerr != nil {
			err = cerrors.NewM(err, cerr)
		}
	}()

	for {
		// 1) check shutdown
		if err := ctx.Err(); err != nil {
			return err
		}

		// 2) move arrived tasks into the ready queue
		s.admit()
		if s.ready.IsEmpty() && s.arrivals.Empty() {
			return nil
		}
		if s.clock.Count() >= s.maxTicks {
			return fmt.Errorf("tick %d with %d tasks pending: %w", s.clock.Count(), len(s.tasks), ErrTickLimit)
		}

		// 3) promote tasks that have waited long enough
		if err := s.age(); err != nil {
			return err
		}

		// 4) idle case: nothing ready yet, still drive one tick
		t, ok := s.ready.ExtractMin()
		if !ok {
			s.emit(StatusEvent{Kind: StatusIdle})
			s.clock.Advance()
			continue
		}

		// 5) run the most urgent task to completion
		s.dispatch(ctx, t)
	}
}

func (s *Scheduler) admit() {
	now := s.clock.Count()
	for node := s.arrivals.Left(); node != nil; node = s.arrivals.Left() {
		key := node.Key.(nodeKey)
		if key.arrival > now {
			return
		}
		t := node.Value.(*Task)
		s.arrivals.Remove(key)
		s.ready.Insert(t)
		s.emit(StatusEvent{Kind: StatusArrive, TaskID: t.ID, Priority: t.Priority})
	}
}

// age lowers the priority of every ready task by agingStep for each
// agingTicks elapsed since its arrival. A DecreaseKey at position i only
// moves ancestors, which were visited earlier in the pass, down to i.
func (s *Scheduler) age() error {
	if s.agingTicks == 0 {
		return nil
	}
	now := s.clock.Count()
	for i := 0; i < s.ready.Len(); i++ {
		t, err := s.ready.At(i)
		if err != nil {
			return err
		}
		due := (now - t.Arrival) / s.agingTicks
		steps := due - s.aged[t.ID]
		if steps <= 0 {
			continue
		}
		s.aged[t.ID] = due
		p := clampPriority(t.Priority - int(steps)*s.agingStep)
		if p == t.Priority {
			continue
		}
		if err := s.ready.DecreaseKey(i, p); err != nil {
			return err
		}
		s.emit(StatusEvent{Kind: StatusAge, TaskID: t.ID, Priority: p})
	}
	return nil
}

func (s *Scheduler) dispatch(ctx context.Context, t *Task) {
	start := s.clock.Count()
	s.summary.Dispatched++
	s.summary.TotalWait += start - t.Arrival
	s.emit(StatusEvent{Kind: StatusDispatch, TaskID: t.ID, Priority: t.Priority})

	work := s.work[t.ID]
	delete(s.tasks, t.ID)
	delete(s.work, t.ID)
	delete(s.aged, t.ID)

	ran, err := work(ctx, s.clock.Advance)

	kind := StatusFinish
	if err != nil {
		kind = StatusFail
		s.summary.Failed++
	} else {
		s.summary.Completed++
	}
	s.emit(StatusEvent{Kind: kind, TaskID: t.ID, Priority: t.Priority, RanTicks: ran, Err: err})

	if s.clock.Count() > t.Deadline {
		s.summary.Missed++
		s.emit(StatusEvent{Kind: StatusDeadlineMiss, TaskID: t.ID, Priority: t.Priority, RanTicks: ran})
	}
}

func (s *Scheduler) emit(ev StatusEvent) {
	ev.Tick = s.clock.Count()
	for _, fn := range s.listeners {
		fn(ev)
	}
	s.handleEvent(ev)
}

func (s *Scheduler) handleEvent(ev StatusEvent) {
	// an auxiliary function to center the event kind in the output
	center := func(str string, width int) string {
		spaces := int(float64(width-len(str)) / 2)
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
	}

	if s.out != nil {
		msg := fmt.Sprintf("Tick: %07d [%s] => Task: %04d, priority=%02d, ran=%04d ticks",
			ev.Tick,
			center(ev.Kind.String(), 16),
			ev.TaskID,
			ev.Priority,
			ev.RanTicks,
		)
		if ev.Err != nil {
			msg += ", error: " + ev.Err.Error()
		}
		fmt.Fprintln(s.out, msg)
	}

	// CSV output
	if s.csvWriter != nil {
		errMsg := ""
		if ev.Err != nil {
			errMsg = ev.Err.Error()
		}
		rec := []string{
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind.String(),
			strconv.FormatUint(uint64(ev.TaskID), 10),
			strconv.Itoa(ev.Priority),
			strconv.FormatInt(ev.RanTicks, 10),
			errMsg,
		}
		// write errors are sticky and reported by closeCSV
		_ = s.csvWriter.Write(rec)
		s.csvWriter.Flush()
	}
}

func (s *Scheduler) closeCSV() error {
	if s.csvFile == nil {
		return nil
	}
	s.csvWriter.Flush()
	werr := s.csvWriter.Error()
	cerr := s.csvFile.Close()
	s.csvFile, s.csvWriter = nil, nil
	if werr != nil {
		return fmt.Errorf("csv event log: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("csv event log: %w", cerr)
	}
	return nil
}

// nodeKey is used as a key in the arrival tree.
type nodeKey struct {
	arrival int64
	id      TaskID
}

// cmp orders nodeKeys by arrival tick, then by task ID.
func cmp(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.arrival < kb.arrival:
		return -1
	case ka.arrival > kb.arrival:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}
