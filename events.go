package dr

import "sync"

// Sink is the progress channel of spec §4.5/§9: an unbounded
// single-producer(-per-worker)-to-single-consumer queue that tolerates
// the consumer disconnecting. Producers (the coordinator's worker
// goroutines) never block on Sink; only the internal pump goroutine
// blocks, and only until the consumer calls Disconnect.
type Sink struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []AnalysisEvent
	closed bool

	stopOnce sync.Once
	stop     chan struct{}
	out      chan AnalysisEvent
}

// NewSink creates a Sink ready to receive events.
func NewSink() *Sink {
	s := &Sink{stop: make(chan struct{}), out: make(chan AnalysisEvent)}
	s.cond = sync.NewCond(&s.mu)

	go s.pump()

	return s
}

// Events returns the channel a consumer should range over.
func (s *Sink) Events() <-chan AnalysisEvent { return s.out }

// Disconnect tells the sink no one is listening anymore. Already
// enqueued and future events are dropped rather than delivered.
func (s *Sink) Disconnect() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Sink) send(ev AnalysisEvent) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return
	}

	s.queue = append(s.queue, ev)
	s.mu.Unlock()
	s.cond.Signal()
}

// closeWhenDrained marks the sink closed once the caller has no more
// events to send; the pump exits after draining what remains queued.
func (s *Sink) closeWhenDrained() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Signal()
}

func (s *Sink) pump() {
	defer close(s.out)

	for {
		s.mu.Lock()

		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}

		if len(s.queue) == 0 && s.closed {
			s.mu.Unlock()

			return
		}

		ev := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- ev:
		case <-s.stop:
			return
		}
	}
}
