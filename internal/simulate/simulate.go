// Package simulate stands in for slow upstream work with fixed timed waits.
package simulate

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	JobSearch      Kind = "job_search"
	ResumeUpload   Kind = "resume_upload"
	ResumeAnalysis Kind = "resume_analysis"
	Assessment     Kind = "assessment"
)

// Delays configures how long each simulated operation takes.
type Delays struct {
	JobSearch      time.Duration `mapstructure:"job_search"`
	ResumeUpload   time.Duration `mapstructure:"resume_upload"`
	ResumeAnalysis time.Duration `mapstructure:"resume_analysis"`
	Assessment     time.Duration `mapstructure:"assessment"`
}

func DefaultDelays() Delays {
	return Delays{
		JobSearch:      2 * time.Second,
		ResumeUpload:   1500 * time.Millisecond,
		ResumeAnalysis: 3 * time.Second,
		Assessment:     4 * time.Second,
	}
}

func (d Delays) For(k Kind) time.Duration {
	switch k {
	case JobSearch:
		return d.JobSearch
	case ResumeUpload:
		return d.ResumeUpload
	case ResumeAnalysis:
		return d.ResumeAnalysis
	case Assessment:
		return d.Assessment
	}
	return 0
}

type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Simulator hands out timed tasks. Delays can be swapped at runtime when the
// configuration is reloaded.
type Simulator struct {
	mu     sync.RWMutex
	delays Delays
	clock  Clock
}

func New(delays Delays) *Simulator {
	return &Simulator{delays: delays, clock: realClock{}}
}

// NewWithClock is used by tests to drive time explicitly.
func NewWithClock(delays Delays, clock Clock) *Simulator {
	return &Simulator{delays: delays, clock: clock}
}

func (s *Simulator) Delays() Delays {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delays
}

func (s *Simulator) SetDelays(d Delays) {
	s.mu.Lock()
	s.delays = d
	s.mu.Unlock()
}

// Task is a simulated operation in flight. Once started it cannot be aborted.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Start waits for the delay configured for kind and then calls fn. The
// context passed to fn keeps the caller's values but never reports
// cancellation, so a started task always runs to completion.
func Start[T any](ctx context.Context, s *Simulator, kind Kind, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	detached := context.WithoutCancel(ctx)
	d := s.Delays().For(kind)

	go func() {
		defer close(t.done)
		if d > 0 {
			<-s.clock.After(d)
		}
		t.value, t.err = fn(detached)
	}()
	return t
}

func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task has finished.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.value, t.err
}

// Sleep is the cancellable counterpart of Start for callers that need an
// abort path.
func (s *Simulator) Sleep(ctx context.Context, kind Kind) error {
	d := s.Delays().For(kind)
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(d):
		return nil
	}
}
