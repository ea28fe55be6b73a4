package notification

import (
	"context"
	"encoding/json"
	"fmt"

	domainLoan "bank-loans-service/internal/domain/loan"
	domain "bank-loans-service/internal/domain/notification"

	"go.uber.org/zap"
)

// Dispatcher projects a loan snapshot into the wire payload and publishes it
// on the fixed loan topic, keyed by event kind so consumers see per-kind
// ordering.
type Dispatcher struct {
	ch    domain.Channel
	topic string
	log   *zap.Logger
}

func NewDispatcher(ch domain.Channel, log *zap.Logger) *Dispatcher {
	return &Dispatcher{ch: ch, topic: domain.Topic, log: log}
}

func (d *Dispatcher) Dispatch(ctx context.Context, kind domain.EventKind, l *domainLoan.Loan) error {
	n := domain.Notification{
		ID:               l.ID,
		UserID:           l.UserID,
		LoanNumber:       l.LoanNumber,
		LoanType:         string(l.LoanType),
		LoanAmount:       l.LoanAmount,
		RemainingBalance: l.RemainingBalance,
		LoanStatus:       string(l.LoanStatus),
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrPublishFailed, err)
	}

	if err := d.ch.Publish(ctx, d.topic, string(kind), payload); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}
	d.log.Info("loan notification published",
		zap.String("topic", d.topic),
		zap.String("event_kind", string(kind)),
		zap.Uint64("loan_id", l.ID))
	return nil
}
