package test

import (
	"context"
	"sync"

	"github.com/polkiloo/vouchermart/internal/domain/model"
)

// StatusReply is one scripted getStatus answer.
type StatusReply struct {
	Raw string
	Err error
}

// RentalStub scripts number-rental responses and counts calls.
type RentalStub struct {
	Unconfigured bool
	NumberRaw    string
	NumberErr    error
	Statuses     []StatusReply

	mu          sync.Mutex
	numberCalls int
	statusCalls int
}

// Configured reports whether the stub pretends to have an API key.
func (s *RentalStub) Configured() bool {
	return !s.Unconfigured
}

// GetNumber returns the scripted number response.
func (s *RentalStub) GetNumber(ctx context.Context, service, country string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.numberCalls++
	return s.NumberRaw, s.NumberErr
}

// GetStatus returns scripted replies in order, repeating the last one.
func (s *RentalStub) GetStatus(ctx context.Context, rentalID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusCalls++
	if len(s.Statuses) == 0 {
		return "STATUS_WAIT_CODE", nil
	}
	idx := s.statusCalls - 1
	if idx >= len(s.Statuses) {
		idx = len(s.Statuses) - 1
	}
	reply := s.Statuses[idx]
	return reply.Raw, reply.Err
}

// NumberCalls returns how many getNumber requests were made.
func (s *RentalStub) NumberCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numberCalls
}

// StatusCalls returns how many getStatus requests were made.
func (s *RentalStub) StatusCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusCalls
}

// GatewayStub fakes the hosted checkout provider.
type GatewayStub struct {
	CreateFn func(context.Context, model.CheckoutRequest) (model.CheckoutSession, error)
	ParseFn  func([]byte, string) (model.CheckoutCompleted, error)

	mu       sync.Mutex
	Requests []model.CheckoutRequest
}

// CreateCheckoutSession records the request and returns the scripted session.
func (s *GatewayStub) CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (model.CheckoutSession, error) {
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return model.CheckoutSession{ID: "cs_" + req.OrderID, URL: "https://checkout.example/" + req.OrderID}, nil
}

// ParseEvent delegates to ParseFn.
func (s *GatewayStub) ParseEvent(payload []byte, signature string) (model.CheckoutCompleted, error) {
	if s.ParseFn != nil {
		return s.ParseFn(payload, signature)
	}
	return model.CheckoutCompleted{OrderID: string(payload)}, nil
}
