package payment

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OrderSettler is the slice of the order repository the processor needs
type OrderSettler interface {
	SettleOrdersOlderThan(cutoff time.Time) ([]string, error)
}

// Processor moves processing orders to paid once they are older than
// the settle delay. It stands in for a payment-provider webhook: the
// order row, not any client timer, is the authority on payment state.
type Processor struct {
	orders      OrderSettler
	settleDelay time.Duration
	pollPeriod  time.Duration
	logger      *zap.Logger
	onSettled   func(orderID string)
}

// NewProcessor creates a payment processor. onSettled is invoked once
// per settled order and may be nil.
func NewProcessor(orders OrderSettler, settleDelay, pollPeriod time.Duration, logger *zap.Logger, onSettled func(orderID string)) *Processor {
	return &Processor{
		orders:      orders,
		settleDelay: settleDelay,
		pollPeriod:  pollPeriod,
		logger:      logger,
		onSettled:   onSettled,
	}
}

// Run polls for settleable orders until the context is cancelled
func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.pollPeriod)
	defer ticker.Stop()

	p.logger.Info("Payment processor started",
		zap.Duration("settle_delay", p.settleDelay),
		zap.Duration("poll_period", p.pollPeriod))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Payment processor stopped")
			return
		case <-ticker.C:
			p.settleDue()
		}
	}
}

func (p *Processor) settleDue() {
	cutoff := time.Now().Add(-p.settleDelay)

	settled, err := p.orders.SettleOrdersOlderThan(cutoff)
	if err != nil {
		p.logger.Error("Failed to settle orders", zap.Error(err))
		return
	}

	for _, orderID := range settled {
		p.logger.Info("Order settled", zap.String("order_id", orderID))
		if p.onSettled != nil {
			p.onSettled(orderID)
		}
	}
}
