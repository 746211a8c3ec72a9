package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

type lifecycleApp interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
	StopTimeout() time.Duration
}

var exit = os.Exit

func run(ctx context.Context, app lifecycleApp) {
	if code := serve(ctx, app, os.Stderr); code != 0 {
		exit(code)
	}
}

// serve blocks until ctx is cancelled or the app requests shutdown.
func serve(ctx context.Context, app lifecycleApp, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start vouchermart: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "failed to stop vouchermart: %v\n", err)
		return 1
	}
	return 0
}
