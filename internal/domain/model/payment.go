package model

// CheckoutRequest carries everything the payment provider needs to open a hosted session.
type CheckoutRequest struct {
	OrderID    string
	Product    Product
	Amount     int64
	Currency   string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is a provider-hosted payment page.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutResult is a freshly opened payment session for a pending order.
type CheckoutResult struct {
	Order   *Order
	Session CheckoutSession
}

// CheckoutCompleted is the verified payment confirmation delivered by the provider.
type CheckoutCompleted struct {
	EventID         string
	SessionID       string
	PaymentIntentID string
	OrderID         string
	ProductID       string
}
