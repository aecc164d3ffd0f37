package store

import (
	"sync"
	"time"

	"rpncalc/rpn"
)

// DefaultDebounce is the quiet period before a scheduled save is written.
const DefaultDebounce = 250 * time.Millisecond

// Saver coalesces saves: only the last state scheduled within the debounce
// window is written. Write failures go to OnError, if set, and are otherwise
// dropped. A Saver is safe for concurrent use.
type Saver struct {
	path  string
	delay time.Duration

	// OnError observes failed writes. It runs on the timer goroutine.
	OnError func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending *rpn.State
	closed  bool
	writeMu sync.Mutex
}

func NewSaver(path string, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Saver{path: path, delay: delay}
}

func (s *Saver) Path() string {
	return s.path
}

// Schedule replaces the pending state and restarts the debounce timer.
func (s *Saver) Schedule(st rpn.State) {
	if s == nil {
		return
	}
	st = st.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &st
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		_ = s.Flush()
	})
}

// Flush writes the pending state now, if there is one.
func (s *Saver) Flush() error {
	if s == nil {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	st := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if st == nil {
		return nil
	}

	err := Save(s.path, *st)
	if err != nil && s.OnError != nil {
		s.OnError(err)
	}
	return err
}

// Close flushes any pending state and rejects later schedules.
func (s *Saver) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush()
}
