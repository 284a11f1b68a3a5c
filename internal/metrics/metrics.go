package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// RequestStats counts outbound calls to a remote dependency.
type RequestStats struct {
	Requests Counter
	Failures Counter
}

// Record counts one call and reports whether it failed.
func (s *RequestStats) Record(err error) {
	s.Requests.Inc()
	if err != nil {
		s.Failures.Inc()
	}
}

// FailureRate is Failures/Requests, 0 before the first call.
func (s *RequestStats) FailureRate() float64 {
	total := s.Requests.Load()
	if total == 0 {
		return 0
	}
	return float64(s.Failures.Load()) / float64(total)
}
