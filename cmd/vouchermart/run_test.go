package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

type appStub struct {
	startErr error
	stopErr  error
	done     chan os.Signal
	stopped  bool
}

func newAppStub() *appStub {
	return &appStub{done: make(chan os.Signal, 1)}
}

func (a *appStub) Start(context.Context) error { return a.startErr }

func (a *appStub) Stop(ctx context.Context) error {
	a.stopped = true
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("stop context without deadline")
	}
	return a.stopErr
}

func (a *appStub) Done() <-chan os.Signal { return a.done }

func (a *appStub) StopTimeout() time.Duration { return time.Second }

func TestServeStopsOnContextCancel(t *testing.T) {
	app := newAppStub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stderr bytes.Buffer
	if code := serve(ctx, app, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
	}
	if !app.stopped {
		t.Fatal("expected app to be stopped")
	}
}

func TestServeStopsOnAppDone(t *testing.T) {
	app := newAppStub()
	app.done <- syscall.SIGTERM

	if code := serve(context.Background(), app, &bytes.Buffer{}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !app.stopped {
		t.Fatal("expected app to be stopped")
	}
}

func TestServeReportsFailures(t *testing.T) {
	app := newAppStub()
	app.startErr = errors.New("db unreachable")
	var stderr bytes.Buffer
	if code := serve(context.Background(), app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "failed to start") || app.stopped {
		t.Fatalf("unexpected start failure handling: %q stopped=%v", stderr.String(), app.stopped)
	}

	app = newAppStub()
	app.stopErr = errors.New("timeout")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stderr.Reset()
	if code := serve(ctx, app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "failed to stop") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunExitsOnFailure(t *testing.T) {
	var code int
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = os.Exit })

	app := newAppStub()
	app.startErr = errors.New("boom")
	run(context.Background(), app)
	if code != 1 {
		t.Fatalf("expected exit(1), got %d", code)
	}
}
