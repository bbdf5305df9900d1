package timer

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by explicit calls to Advance. Callbacks run
// synchronously inside Advance, in due-time order.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Stopper {
	m.seq++
	task := &manualTask{due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return task
}

// Advance moves the clock forward by d and runs everything that became due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		task := m.nextDue(target)
		if task == nil {
			break
		}
		m.now = task.due
		task.stopped = true
		task.fn()
	}
	m.now = target
}

// Pending returns the number of callbacks that have not run or been stopped.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(limit time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.tasks = live
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due != m.tasks[j].due {
			return m.tasks[i].due < m.tasks[j].due
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	if len(m.tasks) == 0 || m.tasks[0].due > limit {
		return nil
	}
	return m.tasks[0]
}
