package test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// OTPSourceStub mimics fulfillment interactions with the OTP poller.
type OTPSourceStub struct {
	Stale   [][]model.Order
	PollFn  func(context.Context, string) (*model.Order, error)
	ClaimFn func(context.Context, int) ([]model.Order, error)

	mu         sync.Mutex
	Polled     []string
	claimCalls int32
}

// PollOTP records the order id and delegates to PollFn.
func (s *OTPSourceStub) PollOTP(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.Lock()
	s.Polled = append(s.Polled, orderID)
	s.mu.Unlock()
	if s.PollFn != nil {
		return s.PollFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusFulfilled, OTPCode: "0000"}, nil
}

// ClaimStalePolls returns queued batches, then nothing.
func (s *OTPSourceStub) ClaimStalePolls(ctx context.Context, limit int) ([]model.Order, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.claimCalls, 1)
	if int(call) <= len(s.Stale) {
		return s.Stale[call-1], nil
	}
	return nil, nil
}

// PolledIDs returns a snapshot of polled order ids.
func (s *OTPSourceStub) PolledIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Polled...)
}
