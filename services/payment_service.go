package services

import (
	"context"

	"shop-service/models"
)

// PaymentProcessor reserves the payment step of checkout for a future
// integration. Confirm calls it inside the checkout transaction so a
// payment failure will also abort order creation.
type PaymentProcessor interface {
	Process(ctx context.Context, user *models.User, amount int) error
}

// NoopPaymentProcessor accepts every payment without charging anything.
type NoopPaymentProcessor struct{}

// NewNoopPaymentProcessor creates the placeholder processor
func NewNoopPaymentProcessor() *NoopPaymentProcessor {
	return &NoopPaymentProcessor{}
}

func (p *NoopPaymentProcessor) Process(ctx context.Context, user *models.User, amount int) error {
	return nil
}
