package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32

	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _, _ = flight.Do("render", func() (any, error) {
			close(started)
			<-release
			executions.Add(1)
			return "png-bytes", nil
		})
	}()

	<-started

	var wg sync.WaitGroup
	shared := make([]bool, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, err, wasShared := flight.Do("render", func() (any, error) {
				executions.Add(1)
				return "png-bytes", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if val != "png-bytes" {
				t.Errorf("unexpected value: %v", val)
			}
			shared[i] = wasShared
		}(i)
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("fn ran %d times, want 1", got)
	}
	for i, s := range shared {
		if !s {
			t.Fatalf("waiter %d did not share the in-flight result", i)
		}
	}
}

func TestSingleFlight_PropagatesError(t *testing.T) {
	var flight SingleFlight
	wantErr := errors.New("boom")

	_, err, _ := flight.Do("k", func() (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestSingleFlight_SequentialCallsRunIndependently(t *testing.T) {
	var flight SingleFlight
	var executions int

	for i := 0; i < 3; i++ {
		_, _, shared := flight.Do("k", func() (any, error) {
			executions++
			return nil, nil
		})
		if shared {
			t.Fatalf("sequential call %d reported a shared result", i)
		}
	}
	if executions != 3 {
		t.Fatalf("fn ran %d times, want 3", executions)
	}
}
