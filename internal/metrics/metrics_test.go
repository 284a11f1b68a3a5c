package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestRequestStats(t *testing.T) {
	var s RequestStats
	assert.Zero(t, s.FailureRate())

	s.Record(nil)
	s.Record(errors.New("boom"))
	s.Record(nil)
	s.Record(errors.New("boom"))

	assert.Equal(t, uint64(4), s.Requests.Load())
	assert.Equal(t, uint64(2), s.Failures.Load())
	assert.InDelta(t, 0.5, s.FailureRate(), 1e-9)
}
