package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/vouchermart/internal/domain/model"
	testhelpers "github.com/polkiloo/vouchermart/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewOTPPollerDefaults(t *testing.T) {
	p := NewOTPPoller(&testhelpers.OTPSourceStub{}, 0, 0, 0, testLogger())
	if p.batchSize != 1 || p.workers != 1 {
		t.Fatalf("expected defaults of 1, got batch=%d workers=%d", p.batchSize, p.workers)
	}
	if p.sweepInterval != 30*time.Second {
		t.Fatalf("unexpected sweep interval %s", p.sweepInterval)
	}
	if cap(p.jobs) != 1 {
		t.Fatalf("unexpected queue capacity %d", cap(p.jobs))
	}
}

func TestOTPPollerPollsScheduledOrders(t *testing.T) {
	source := &testhelpers.OTPSourceStub{}
	p := NewOTPPoller(source, time.Hour, 4, 2, testLogger())
	p.Start(context.Background())
	defer p.Stop()

	for _, id := range []string{"a", "b", "c"} {
		if !p.Schedule(id) {
			t.Fatalf("expected %s to be queued", id)
		}
	}

	waitFor(t, time.Second, func() bool { return len(source.PolledIDs()) == 3 })
}

func TestOTPPollerSweepResumesStalePolls(t *testing.T) {
	source := &testhelpers.OTPSourceStub{Stale: [][]model.Order{{{ID: "stale-1"}, {ID: "stale-2"}}}}
	p := NewOTPPoller(source, 10*time.Millisecond, 2, 1, testLogger())
	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, time.Second, func() bool { return len(source.PolledIDs()) == 2 })
}

func TestOTPPollerScheduleIsNonBlocking(t *testing.T) {
	block := make(chan struct{})
	source := &testhelpers.OTPSourceStub{PollFn: func(ctx context.Context, id string) (*model.Order, error) {
		<-block
		return &model.Order{ID: id}, nil
	}}
	p := NewOTPPoller(source, time.Hour, 1, 1, testLogger())
	p.Start(context.Background())
	defer p.Stop()
	defer close(block)

	if !p.Schedule("first") {
		t.Fatal("expected first order to be queued")
	}
	waitFor(t, time.Second, func() bool { return len(source.PolledIDs()) == 1 })

	if !p.Schedule("second") {
		t.Fatal("expected queue slot for second order")
	}
	done := make(chan bool, 1)
	go func() { done <- p.Schedule("third") }()
	select {
	case queued := <-done:
		if queued {
			t.Fatal("expected full queue to reject")
		}
	case <-time.After(time.Second):
		t.Fatal("schedule blocked on full queue")
	}
}

func TestOTPPollerStopCancelsInFlightPolls(t *testing.T) {
	var cancelled atomic.Bool
	source := &testhelpers.OTPSourceStub{PollFn: func(ctx context.Context, id string) (*model.Order, error) {
		<-ctx.Done()
		cancelled.Store(true)
		return nil, ctx.Err()
	}}
	p := NewOTPPoller(source, time.Hour, 1, 1, testLogger())
	p.Start(context.Background())
	p.Schedule("slow")
	waitFor(t, time.Second, func() bool { return len(source.PolledIDs()) == 1 })

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
	if !cancelled.Load() {
		t.Fatal("expected in-flight poll to observe cancellation")
	}
}

func TestOTPPollerSkipsDuplicateInFlightOrder(t *testing.T) {
	p := NewOTPPoller(&testhelpers.OTPSourceStub{}, time.Hour, 1, 1, testLogger())
	if !p.acquire("a") {
		t.Fatal("expected first acquire to succeed")
	}
	if p.acquire("a") {
		t.Fatal("expected duplicate acquire to fail")
	}
	p.release("a")
	if !p.acquire("a") {
		t.Fatal("expected acquire after release to succeed")
	}
}

func TestOTPPollerSurvivesSourceErrors(t *testing.T) {
	var claims atomic.Int32
	source := &testhelpers.OTPSourceStub{
		ClaimFn: func(context.Context, int) ([]model.Order, error) {
			claims.Add(1)
			return nil, errors.New("db down")
		},
		PollFn: func(context.Context, string) (*model.Order, error) {
			return nil, errors.New("boom")
		},
	}
	p := NewOTPPoller(source, 5*time.Millisecond, 1, 1, testLogger())
	p.Start(context.Background())
	defer p.Stop()

	p.Schedule("x")
	waitFor(t, time.Second, func() bool { return claims.Load() >= 2 && len(source.PolledIDs()) == 1 })
}

func TestOTPPollerStartIsIdempotent(t *testing.T) {
	p := NewOTPPoller(&testhelpers.OTPSourceStub{}, time.Hour, 1, 1, testLogger())
	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
	p.Stop()
}
