package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestScheduler(t *testing.T) {
	type testCase struct {
		Name string
		Run  func(t *testing.T)
	}

	testCases := []testCase{
		{
			Name: "JobRunsRepeatedly",
			Run: func(t *testing.T) {
				var calls atomic.Int32

				ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				defer cancel()

				s := New().Every("count", 10*time.Millisecond, func(ctx context.Context) error {
					calls.Add(1)
					return nil
				})

				if err := s.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
					t.Fatalf("%+v", err)
				}

				if g := calls.Load(); g < 2 {
					t.Errorf("calls: expected at least 2, got %v", g)
				}
			},
		},
		{
			Name: "FailuresDoNotStopSchedule",
			Run: func(t *testing.T) {
				var calls atomic.Int32

				ctx, cancel := context.WithCancel(context.Background())
				defer cancel()

				s := New().Every("flaky", 5*time.Millisecond, func(ctx context.Context) error {
					switch calls.Add(1) {
					case 1:
						return errors.New("transient failure")
					case 2:
						panic("unexpected")
					case 3:
						cancel()
					}
					return nil
				})

				done := make(chan error, 1)
				go func() {
					done <- s.Run(ctx)
				}()

				select {
				case err := <-done:
					if err != nil {
						t.Fatalf("%+v", err)
					}
				case <-time.After(2 * time.Second):
					t.Fatal("scheduler did not recover from failing job")
				}

				if g := calls.Load(); g < 3 {
					t.Errorf("calls: expected at least 3, got %v", g)
				}
			},
		},
		{
			Name: "InvalidInterval",
			Run: func(t *testing.T) {
				s := New().Every("broken", 0, func(ctx context.Context) error { return nil })

				if err := s.Run(context.Background()); err == nil {
					t.Error("expected error on zero interval")
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.Run(t)
		})
	}
}
