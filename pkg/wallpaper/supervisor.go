package wallpaper

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/livelypi/lively/util"
	"github.com/livelypi/lively/util/log"
)

// RendererStatus is a snapshot of one tracked renderer.
type RendererStatus struct {
	ID            string `json:"id"`
	Reference     string `json:"reference"`
	Kind          string `json:"kind"`
	MonitorTarget int    `json:"monitor_target"`
	Pid           int    `json:"pid"`
	Paused        bool   `json:"paused"`
}

// tracked is one live renderer process owned by the supervisor.
type tracked struct {
	id      string
	desc    Descriptor
	process Process
}

// Supervisor owns renderer lifecycle: it tracks at most one active
// renderer per monitor target and enforces teardown-before-replace, the
// guarantee the fire-and-forget dispatcher deliberately does not give.
// All methods are safe for concurrent use; Apply calls are serialized.
type Supervisor struct {
	mu         sync.Mutex
	dispatcher *Dispatcher
	active     map[int]*tracked
	paused     *util.SafeFlag
	applied    *util.SafeCounter
	killWait   time.Duration
}

// NewSupervisor creates a supervisor around the given dispatcher.
func NewSupervisor(dispatcher *Dispatcher) *Supervisor {
	return &Supervisor{
		dispatcher: dispatcher,
		active:     make(map[int]*tracked),
		paused:     util.NewSafeFlag(),
		applied:    util.NewSafeCounter(),
		killWait:   RendererKillWait,
	}
}

// SetDispatcher swaps the dispatcher, e.g. after a config reload
// changed the renderer commands. Live renderers keep running.
func (s *Supervisor) SetDispatcher(dispatcher *Dispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatcher = dispatcher
}

// SetKillWait adjusts how long renderers get to exit after SIGTERM.
func (s *Supervisor) SetKillWait(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.killWait = d
}

// Apply sets the descriptor's wallpaper, stopping whatever renderer
// currently occupies its monitor target first.
func (s *Supervisor) Apply(desc Descriptor) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTargetLocked(desc.MonitorTarget)

	out, err := s.dispatcher.Dispatch(desc)
	if err != nil {
		return out, err
	}

	if out.Process != nil {
		s.active[desc.MonitorTarget] = &tracked{
			id:      uuid.NewString(),
			desc:    desc,
			process: out.Process,
		}
	}
	s.paused.Set(false)
	s.applied.Increment()
	return out, nil
}

// stopTargetLocked tears down renderers overlapping the given target.
// A renderer spanning all monitors overlaps every target, so replacing a
// single monitor stops it too; replacing all monitors stops everything.
func (s *Supervisor) stopTargetLocked(target int) {
	if target == AllMonitors {
		for key, t := range s.active {
			s.stopRenderer(t)
			delete(s.active, key)
		}
		return
	}
	for _, key := range []int{target, AllMonitors} {
		if t, ok := s.active[key]; ok {
			s.stopRenderer(t)
			delete(s.active, key)
		}
	}
}

// stopRenderer terminates a renderer, escalating to SIGKILL after
// killWait.
func (s *Supervisor) stopRenderer(t *tracked) {
	log.Printf("Stopping renderer %s (pid %d)", t.desc, t.process.Pid())
	if err := t.process.Terminate(); err != nil {
		log.Debugf("Terminate pid %d: %v", t.process.Pid(), err)
	}

	done := make(chan struct{})
	go func() {
		_ = t.process.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.killWait):
		log.Printf("Renderer pid %d ignored SIGTERM, killing", t.process.Pid())
		if err := t.process.Kill(); err != nil {
			log.Debugf("Kill pid %d: %v", t.process.Pid(), err)
		}
		<-done
	}
}

// PauseAll suspends every tracked renderer with SIGSTOP.
func (s *Supervisor) PauseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.active {
		if err := t.process.Signal(unix.SIGSTOP); err != nil {
			log.Printf("Failed to pause renderer pid %d: %v", t.process.Pid(), err)
		}
	}
	s.paused.Set(true)
	log.Printf("Paused %d renderer(s)", len(s.active))
	return nil
}

// ResumeAll resumes every tracked renderer with SIGCONT.
func (s *Supervisor) ResumeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.active {
		if err := t.process.Signal(unix.SIGCONT); err != nil {
			log.Printf("Failed to resume renderer pid %d: %v", t.process.Pid(), err)
		}
	}
	s.paused.Set(false)
	log.Printf("Resumed %d renderer(s)", len(s.active))
	return nil
}

// StopAll terminates every tracked renderer concurrently and forgets
// them.
func (s *Supervisor) StopAll() error {
	s.mu.Lock()
	stopping := make([]*tracked, 0, len(s.active))
	for _, t := range s.active {
		stopping = append(stopping, t)
	}
	s.active = make(map[int]*tracked)
	s.mu.Unlock()

	g := new(errgroup.Group)
	for _, t := range stopping {
		t := t
		g.Go(func() error {
			s.stopRenderer(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("Stopped %d renderer(s)", len(stopping))
	return nil
}

// Paused reports whether the supervisor is in the paused state.
func (s *Supervisor) Paused() bool {
	return s.paused.Value()
}

// AppliedCount returns the number of successful Apply calls.
func (s *Supervisor) AppliedCount() int {
	return s.applied.Value()
}

// Snapshot lists the currently tracked renderers.
func (s *Supervisor) Snapshot() []RendererStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	paused := s.paused.Value()
	statuses := make([]RendererStatus, 0, len(s.active))
	for _, t := range s.active {
		statuses = append(statuses, RendererStatus{
			ID:            t.id,
			Reference:     t.desc.Reference,
			Kind:          t.desc.Kind.String(),
			MonitorTarget: t.desc.MonitorTarget,
			Pid:           t.process.Pid(),
			Paused:        paused,
		})
	}
	return statuses
}
