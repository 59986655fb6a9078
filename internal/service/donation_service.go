package service

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sumitroy01/Donate-v2/internal/payment"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
)

const seenPaymentsSize = 4096

type DonationService struct {
	profiles ProfileStore
	gateway  payment.Gateway
	currency string
	// seen dedupes payment ids so a replayed callback cannot credit twice.
	// Process-local and best-effort: it only ever tightens behavior.
	seen *lru.Cache[string, struct{}]
	now  func() time.Time
}

func NewDonationService(profiles ProfileStore, gateway payment.Gateway, currency string) *DonationService {
	seen, _ := lru.New[string, struct{}](seenPaymentsSize)
	return &DonationService{
		profiles: profiles,
		gateway:  gateway,
		currency: currency,
		seen:     seen,
		now:      time.Now,
	}
}

type OrderResult struct {
	OrderID  string `json:"order_id"`
	KeyID    string `json:"key"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers a pledge with the gateway and hands the caller what
// checkout needs: the order id and the public key id, never the secret.
func (s *DonationService) CreateOrder(ctx context.Context, profileID string, amount float64) (*OrderResult, error) {
	if profileID == "" {
		return nil, appErr.ErrInvalid
	}
	minor, ok := payment.ToMinorUnits(amount)
	if !ok {
		return nil, appErr.ErrInvalid
	}
	req := payment.OrderRequest{
		Amount:   minor,
		Currency: s.currency,
		Receipt:  fmt.Sprintf("receipt_%d", s.now().UnixMilli()),
		Notes:    map[string]string{"profileId": profileID},
	}
	order, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		logutil.GetLogger(ctx).Error("gateway order creation failed",
			zap.String("profile_id", profileID), zap.Int64("amount", minor), zap.Error(err))
		return nil, appErr.ErrUpstream
	}
	return &OrderResult{
		OrderID:  order.ID,
		KeyID:    s.gateway.KeyID(),
		Amount:   minor,
		Currency: s.currency,
	}, nil
}

// HandleCallback validates a gateway callback and, only on a valid signature,
// credits the target profile exactly once. Every early return is a deliberate
// no-op: the caller is a redirected browser and never sees an error, so the
// money side fails closed while the UX side fails open. A non-nil return
// means the store broke mid-apply, for logging only.
func (s *DonationService) HandleCallback(ctx context.Context, cb payment.Callback) error {
	logger := logutil.GetLogger(ctx).With(
		zap.String("order_id", cb.OrderID), zap.String("payment_id", cb.PaymentID))
	if !cb.IsComplete() {
		logger.Warn("incomplete payment callback, skipping")
		return nil
	}
	if !s.gateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		logger.Warn("payment callback signature mismatch, skipping")
		return nil
	}
	if cb.ProfileID == "" {
		logger.Warn("valid payment callback without profile id, skipping")
		return nil
	}
	if _, ok := payment.ToMinorUnits(cb.Amount); !ok {
		logger.Warn("valid payment callback without usable amount, skipping")
		return nil
	}
	if previouslySeen, _ := s.seen.ContainsOrAdd(cb.PaymentID, struct{}{}); previouslySeen {
		logger.Warn("duplicate payment callback, skipping")
		return nil
	}

	updated, err := s.profiles.IncrementDonated(ctx, cb.ProfileID, cb.Amount)
	if err != nil {
		if appErr.IsNotFound(err) {
			logger.Warn("payment callback for unknown profile", zap.String("profile_id", cb.ProfileID))
			return nil
		}
		// The payment was never credited, so forget it and let the gateway's
		// retry of the same callback go through.
		s.seen.Remove(cb.PaymentID)
		return err
	}
	logger.Info("donation credited",
		zap.String("profile_id", updated.ID),
		zap.Float64("amount", cb.Amount),
		zap.Float64("donated_total", updated.DonatedAmount))

	if !updated.GoalMet && updated.DonatedAmount >= updated.DonationGoal {
		latched, err := s.profiles.MarkGoalMet(ctx, updated.ID, s.now().Unix())
		if err != nil {
			return err
		}
		if latched {
			logger.Info("donation goal reached", zap.String("profile_id", updated.ID),
				zap.Float64("goal", updated.DonationGoal))
		}
	}
	return nil
}
