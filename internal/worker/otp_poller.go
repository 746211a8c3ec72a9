package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// OTPSource exposes the subset of fulfillment functionality required by the poller.
type OTPSource interface {
	PollOTP(ctx context.Context, orderID string) (*model.Order, error)
	ClaimStalePolls(ctx context.Context, limit int) ([]model.Order, error)
}

// OTPPoller collects OTP codes for fulfilled orders in the background.
// Orders arrive through Schedule right after fulfillment, and a periodic
// sweep picks up polls that were never finished, e.g. after a restart.
type OTPPoller struct {
	source        OTPSource
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs     chan string
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewOTPPoller constructs the OTP poller worker pool.
func NewOTPPoller(source OTPSource, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OTPPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Second
	}
	return &OTPPoller{
		source:        source,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan string, batchSize*workers),
		inflight:      make(map[string]struct{}),
	}
}

// Start launches background processing.
func (p *OTPPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop cancels in-flight polls and waits for all workers to finish.
func (p *OTPPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Schedule queues an OTP poll without blocking. It reports false when the
// queue is full; the sweep will pick the order up later.
func (p *OTPPoller) Schedule(orderID string) bool {
	select {
	case p.jobs <- orderID:
		return true
	default:
		p.logger.Warn("otp poll queue full, deferring to sweep", slog.String("order_id", orderID))
		return false
	}
}

func (p *OTPPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.sweepInterval)
	defer ticker.Stop()

	p.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *OTPPoller) sweep(ctx context.Context) {
	orders, err := p.source.ClaimStalePolls(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("claim stale otp polls failed", slog.String("error", err.Error()))
		}
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order.ID:
			p.logger.Info("otp poll resumed", slog.String("order_id", order.ID))
		}
	}
}

func (p *OTPPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case orderID := <-p.jobs:
			p.handleOrder(ctx, orderID)
		}
	}
}

func (p *OTPPoller) handleOrder(ctx context.Context, orderID string) {
	if !p.acquire(orderID) {
		return
	}
	defer p.release(orderID)

	order, err := p.source.PollOTP(ctx, orderID)
	switch {
	case errors.Is(err, context.Canceled):
		p.logger.Info("otp poll interrupted", slog.String("order_id", orderID))
	case err != nil:
		p.logger.Error("otp poll failed", slog.String("order_id", orderID), slog.String("error", err.Error()))
	case order.OTPCode == "":
		p.logger.Info("otp poll finished without code", slog.String("order_id", orderID))
	default:
		p.logger.Info("otp poll finished", slog.String("order_id", orderID))
	}
}

// acquire guards against two workers polling the same order at once.
func (p *OTPPoller) acquire(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inflight[orderID]; busy {
		return false
	}
	p.inflight[orderID] = struct{}{}
	return true
}

func (p *OTPPoller) release(orderID string) {
	p.mu.Lock()
	delete(p.inflight, orderID)
	p.mu.Unlock()
}
