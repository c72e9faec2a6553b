package payment

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/azurestore/backend/internal/domain/ordering"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
	"github.com/azurestore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedGateway is a stand-in payment processor. It waits a bounded
// random time to mimic a real gateway round trip and then approves the
// charge. Validation of amount and method still applies, and the wait
// honors context cancellation.
type SimulatedGateway struct {
	maxLatency time.Duration
	logger     *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedGateway creates a simulated gateway from the payment config
func NewSimulatedGateway(cfg config.PaymentConfig, logger *zap.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		maxLatency: cfg.MaxLatency,
		logger:     logger.Named("payment"),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ProcessPayment simulates charging the shopper.
// Returns an error when the context is cancelled mid-charge.
func (g *SimulatedGateway) ProcessPayment(ctx context.Context, amount valueobject.Money, method ordering.PaymentMethod) (*ordering.PaymentResult, error) {
	if !method.IsValid() {
		return nil, fmt.Errorf("unsupported payment method: %s", method)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("charge amount must be positive, got %s", amount)
	}

	if delay := g.nextDelay(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	reference := newPaymentReference()
	g.logger.Info("charge approved",
		zap.String("reference", reference),
		zap.String("method", method.String()),
		zap.String("amount", amount.String()),
	)

	return &ordering.PaymentResult{
		Status:    ordering.PaymentResultCompleted,
		Reference: reference,
	}, nil
}

// nextDelay draws a random latency up to the configured cap
func (g *SimulatedGateway) nextDelay() time.Duration {
	if g.maxLatency <= 0 {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return time.Duration(g.rng.Int63n(int64(g.maxLatency)))
}

// newPaymentReference builds a gateway transaction identifier
func newPaymentReference() string {
	return "PAY-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:16])
}

// Ensure SimulatedGateway implements PaymentGateway
var _ ordering.PaymentGateway = (*SimulatedGateway)(nil)
