// Package speaker plays beep patterns on an output in the background.
package speaker

import (
	"log"
	"sync"
	"time"
)

// Speaker plays one pattern at a time. Starting a pattern while another
// is playing cuts the first one short.
type Speaker struct {
	out    Output
	stopCh chan struct{}
	doneCh chan struct{}
	mutex  sync.Mutex
	closed bool

	// after is replaced in tests
	after func(time.Duration) <-chan time.Time
}

// New returns a speaker that plays on out
func New(out Output) (*Speaker, error) {
	if out == nil {
		return nil, ErrOutputRequired
	}
	return &Speaker{out: out, after: time.After}, nil
}

// Play starts p and returns without waiting for it to finish
func (s *Speaker) Play(p Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.stopLocked()

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.playLoop(p, s.stopCh, s.doneCh)

	return nil
}

// Wait blocks until the current pattern, if any, has finished
func (s *Speaker) Wait() {
	s.mutex.Lock()
	doneCh := s.doneCh
	s.mutex.Unlock()

	if doneCh != nil {
		<-doneCh
	}
}

// Stop silences the speaker
func (s *Speaker) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stopLocked()
}

// Close stops playback and rejects further patterns
func (s *Speaker) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stopLocked()
	s.closed = true
	return s.out.TurnOff()
}

func (s *Speaker) stopLocked() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.stopCh = nil
	s.doneCh = nil
}

func (s *Speaker) playLoop(p Pattern, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer func() {
		if err := s.out.TurnOff(); err != nil {
			log.Printf("[speaker] failed to turn off %s: %v", s.out, err)
		}
	}()

	for i := 0; i < p.Times; i++ {
		if err := s.out.TurnOn(); err != nil {
			log.Printf("[speaker] failed to turn on %s: %v", s.out, err)
			return
		}
		if !s.sleep(p.Duration, stopCh) {
			return
		}

		if err := s.out.TurnOff(); err != nil {
			log.Printf("[speaker] failed to turn off %s: %v", s.out, err)
			return
		}
		if !s.sleep(p.Duration, stopCh) {
			return
		}
	}
}

// sleep waits for d and reports false if the pattern was stopped first
func (s *Speaker) sleep(d time.Duration, stopCh chan struct{}) bool {
	select {
	case <-stopCh:
		return false
	case <-s.after(d):
		return true
	}
}
