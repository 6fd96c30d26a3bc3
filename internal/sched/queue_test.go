package sched

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
)

func (pq *PriorityQueue) verify(t *testing.T) {
	t.Helper()
	for i := 1; i < len(pq.heap); i++ {
		p := parent(i)
		if pq.heap[p].Priority > pq.heap[i].Priority {
			t.Fatalf("heap invariant invalidated [%d] = %v > [%d] = %v", p, pq.heap[p], i, pq.heap[i])
		}
	}
}

func fill(pq *PriorityQueue, priorities ...int) []*Task {
	tasks := make([]*Task, len(priorities))
	for i, p := range priorities {
		tasks[i] = &Task{ID: TaskID(i + 1), Priority: p}
		pq.Insert(tasks[i])
	}
	return tasks
}

func drain(t *testing.T, pq *PriorityQueue) []int {
	t.Helper()
	var out []int
	for !pq.IsEmpty() {
		task, ok := pq.ExtractMin()
		if !ok {
			t.Fatalf("ExtractMin on non-empty queue returned no task")
		}
		pq.verify(t)
		out = append(out, task.Priority)
	}
	return out
}

func TestByPriority(t *testing.T) {
	for i, tc := range []struct {
		a, b int
		want bool
	}{
		{1, 2, true},
		{2, 1, false},
		{3, 3, false},
		{-1, 0, true},
	} {
		a, b := &Task{Priority: tc.a}, &Task{Priority: tc.b}
		if got, want := ByPriority(a, b), tc.want; got != want {
			t.Errorf("%v: ByPriority(%v, %v): got %v, want %v", i, tc.a, tc.b, got, want)
		}
	}
}

func TestEmpty(t *testing.T) {
	var zero PriorityQueue
	for _, pq := range []*PriorityQueue{NewPriorityQueue(), &zero} {
		if !pq.IsEmpty() {
			t.Errorf("new queue is not empty")
		}
		task, ok := pq.ExtractMin()
		if ok || task != nil {
			t.Errorf("got %v, %v, want nil, false", task, ok)
		}
		if got, want := pq.Len(), 0; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestSingle(t *testing.T) {
	pq := NewPriorityQueue()
	task := NewTask(7, 3, 0, 10)
	pq.Insert(task)
	if pq.IsEmpty() {
		t.Fatalf("queue is empty after insert")
	}
	got, ok := pq.ExtractMin()
	if !ok || got != task {
		t.Errorf("got %v, %v, want %v, true", got, ok, task)
	}
	if !pq.IsEmpty() {
		t.Errorf("queue is not empty after extracting its only task")
	}
}

func TestExtractionOrder(t *testing.T) {
	pq := NewPriorityQueue()
	fill(pq, 5, 1, 4, 2, 3)
	pq.verify(t)
	if got, want := drain(t, pq), []int{1, 2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSizeAccounting(t *testing.T) {
	pq := NewPriorityQueue()
	for i := 0; i < 10; i++ {
		before := pq.Len()
		pq.Insert(&Task{ID: TaskID(i), Priority: 10 - i})
		if got, want := pq.Len(), before+1; got != want {
			t.Errorf("insert: got %v, want %v", got, want)
		}
	}
	for i := 0; i < 10; i++ {
		before := pq.Len()
		if _, ok := pq.ExtractMin(); !ok {
			t.Fatalf("%v: unexpected empty queue", i)
		}
		if got, want := pq.Len(), before-1; got != want {
			t.Errorf("extract: got %v, want %v", got, want)
		}
		if got, want := pq.IsEmpty(), pq.Len() == 0; got != want {
			t.Errorf("IsEmpty: got %v, want %v", got, want)
		}
	}
}

func TestDecreaseKey(t *testing.T) {
	pq := NewPriorityQueue()
	tasks := fill(pq, 10, 20, 30)
	if got, want := pq.Tasks(), tasks; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if err := pq.DecreaseKey(2, 5); err != nil {
		t.Fatal(err)
	}
	pq.verify(t)
	got, ok := pq.ExtractMin()
	if !ok || got != tasks[2] {
		t.Errorf("got %v, want %v", got, tasks[2])
	}
	if got, want := got.Priority, 5; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := drain(t, pq), []int{10, 20}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecreaseKeyEqual(t *testing.T) {
	pq := NewPriorityQueue()
	tasks := fill(pq, 1, 2, 3)
	if err := pq.DecreaseKey(1, 2); err != nil {
		t.Fatal(err)
	}
	if got, want := pq.Tasks(), tasks; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecreaseKeyErrors(t *testing.T) {
	pq := NewPriorityQueue()
	fill(pq, 4, 8, 6, 9)
	before := pq.Tasks()
	priorities := func() []int {
		var p []int
		for _, task := range pq.Tasks() {
			p = append(p, task.Priority)
		}
		return p
	}
	wantPriorities := priorities()

	for i, tc := range []struct {
		index, priority int
		err             error
	}{
		{-1, 0, ErrIndexOutOfRange},
		{4, 0, ErrIndexOutOfRange},
		{100, 0, ErrIndexOutOfRange},
		{0, 5, ErrPriorityIncrease},
		{3, 10, ErrPriorityIncrease},
	} {
		err := pq.DecreaseKey(tc.index, tc.priority)
		if !errors.Is(err, tc.err) {
			t.Errorf("%v: got %v, want %v", i, err, tc.err)
		}
		if got, want := pq.Tasks(), before; !slices.Equal(got, want) {
			t.Errorf("%v: queue modified: got %v, want %v", i, got, want)
		}
		if got, want := priorities(), wantPriorities; !slices.Equal(got, want) {
			t.Errorf("%v: priorities modified: got %v, want %v", i, got, want)
		}
	}

	if _, err := pq.At(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("got %v, want %v", err, ErrIndexOutOfRange)
	}
	if task, err := pq.At(0); err != nil || task.Priority != 4 {
		t.Errorf("got %v, %v, want priority 4", task, err)
	}
}

func TestAgainstReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(0x1234))
	pq := NewPriorityQueue()
	ref := binaryheap.NewWith(utils.IntComparator)
	for i := 0; i < 2000; i++ {
		if rnd.Intn(3) != 0 {
			p := rnd.Intn(50)
			pq.Insert(&Task{ID: TaskID(i), Priority: p})
			ref.Push(p)
		} else {
			task, ok := pq.ExtractMin()
			want, wantOK := ref.Pop()
			if ok != wantOK {
				t.Fatalf("%v: got %v, want %v", i, ok, wantOK)
			}
			if ok && task.Priority != want.(int) {
				t.Fatalf("%v: got %v, want %v", i, task.Priority, want)
			}
		}
		pq.verify(t)
		if got, want := pq.Len(), ref.Size(); got != want {
			t.Fatalf("%v: got %v, want %v", i, got, want)
		}
	}
}

func TestRoundTripWithDecreaseKey(t *testing.T) {
	rnd := rand.New(rand.NewSource(0x5678))
	pq := NewPriorityQueue()
	const n = 500
	final := map[TaskID]int{}
	for i := 0; i < n; i++ {
		task := &Task{ID: TaskID(i), Priority: rnd.Intn(1000)}
		pq.Insert(task)
		if i%5 == 0 {
			idx := rnd.Intn(pq.Len())
			target, err := pq.At(idx)
			if err != nil {
				t.Fatal(err)
			}
			if err := pq.DecreaseKey(idx, target.Priority-rnd.Intn(100)); err != nil {
				t.Fatal(err)
			}
		}
		pq.verify(t)
	}
	for _, task := range pq.Tasks() {
		final[task.ID] = task.Priority
	}

	prev := -1 << 31
	seen := map[TaskID]bool{}
	for !pq.IsEmpty() {
		task, _ := pq.ExtractMin()
		pq.verify(t)
		if task.Priority < prev {
			t.Fatalf("out of order: %v after %v", task.Priority, prev)
		}
		prev = task.Priority
		if seen[task.ID] {
			t.Fatalf("task %v extracted twice", task.ID)
		}
		seen[task.ID] = true
		if got, want := task.Priority, final[task.ID]; got != want {
			t.Errorf("task %v: got %v, want %v", task.ID, got, want)
		}
	}
	if got, want := len(seen), n; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func BenchmarkInsertExtract(b *testing.B) {
	const n = 10000
	rnd := rand.New(rand.NewSource(1))
	tasks := make([]*Task, n)
	for i := range tasks {
		tasks[i] = &Task{ID: TaskID(i), Priority: rnd.Intn(n)}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pq := NewPriorityQueue()
		for _, t := range tasks {
			pq.Insert(t)
		}
		for !pq.IsEmpty() {
			pq.ExtractMin()
		}
	}
}
