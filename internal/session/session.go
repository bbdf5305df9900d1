// Package session hosts live previews. A session owns one preview engine and
// runs every event and timer callback for it serially on its own loop, then
// ships the patches each step produced to the page in one batch.
package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/dom"
	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/timer"
	"github.com/ziadkadry99/previewkit/internal/vnode"
)

// SendFunc delivers one batch of patches to the page.
type SendFunc func(patches []dom.Patch) error

// Options configures a Session.
type Options struct {
	// Send receives the patches of each loop step. Nil discards them.
	Send SendFunc
	// Scheduler overrides the timer source. By default timers post their
	// callbacks onto the session loop.
	Scheduler   timer.Scheduler
	DiffMode    string
	ExpandFirst int
	Verbose     bool
}

// Session is one open preview.
type Session struct {
	ID        string
	PreviewID string
	Kind      payload.Kind

	engine  Engine
	send    SendFunc
	verbose bool

	batch  []dom.Patch
	events atomic.Int64
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
}

// New builds a session for kind over text. The loop does not start until
// Run is called.
func New(previewID string, kind payload.Kind, text string, opts Options) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		PreviewID: previewID,
		Kind:      kind,
		send:      opts.Send,
		verbose:   opts.Verbose,
		tasks:     make(chan func(), 64),
		done:      make(chan struct{}),
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = timer.Real{Post: s.Post}
	}
	e, err := NewEngine(kind, text, EngineOptions{
		Sink:        dom.SinkFunc(s.apply),
		Scheduler:   sched,
		DiffMode:    diff.Mode(opts.DiffMode),
		ExpandFirst: opts.ExpandFirst,
	})
	if err != nil {
		return nil, err
	}
	s.engine = e
	return s, nil
}

// Engine returns the preview engine.
func (s *Session) Engine() Engine { return s.engine }

// Mount returns the initial markup. Call it before Run.
func (s *Session) Mount() *vnode.Node { return s.engine.Mount() }

// Run executes posted tasks until ctx is done or Close is called.
func (s *Session) Run(ctx context.Context) {
	defer s.Close()
	if s.verbose {
		log.Printf("session: %s: started (%s preview %s)", s.ID, s.Kind, s.PreviewID)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case fn := <-s.tasks:
			fn()
			s.Flush()
		}
	}
}

// Post queues fn on the session loop. It is dropped once the session is
// closed.
func (s *Session) Post(fn func()) {
	select {
	case s.tasks <- fn:
	case <-s.done:
	}
}

// Dispatch queues ev for handling on the loop.
func (s *Session) Dispatch(ev Event) {
	s.Post(func() {
		if err := s.Handle(ev); err != nil {
			log.Printf("session: %s: %s: %v", s.ID, ev.Type, err)
		}
	})
}

// Handle runs ev on the engine synchronously. Only the loop, or a test that
// owns the session exclusively, may call it.
func (s *Session) Handle(ev Event) error {
	s.events.Add(1)
	return s.engine.Handle(ev)
}

// Events returns how many events the session has handled.
func (s *Session) Events() int { return int(s.events.Load()) }

// Flush sends the patches accumulated since the last flush.
func (s *Session) Flush() {
	if len(s.batch) == 0 {
		return
	}
	batch := s.batch
	s.batch = nil
	if s.send == nil {
		return
	}
	if err := s.send(batch); err != nil && s.verbose {
		log.Printf("session: %s: sending patches: %v", s.ID, err)
	}
}

// Close stops the loop. It is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
		if s.verbose {
			log.Printf("session: %s: closed", s.ID)
		}
	})
}

// Done is closed when the session stops.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) apply(p dom.Patch) {
	s.batch = append(s.batch, p)
}
