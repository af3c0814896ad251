package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
	"github.com/duongdanghoc/charging-station-manager/internal/service/access"
)

// Service is the price table: time-windowed rates per pole with a
// non-overlap invariant per (pole, name).
type Service struct {
	rules ports.PriceRuleRepository
	guard *access.Guard
	log   *zap.Logger
}

func NewService(rules ports.PriceRuleRepository, guard *access.Guard, log *zap.Logger) ports.PricingService {
	return &Service{
		rules: rules,
		guard: guard,
		log:   log,
	}
}

func (s *Service) Create(ctx context.Context, vendorID string, in ports.CreatePriceRuleInput) (*domain.PriceRule, error) {
	if _, err := s.guard.VendorOwnsPole(ctx, in.PoleID, vendorID); err != nil {
		return nil, err
	}

	rule := &domain.PriceRule{
		ID:            uuid.New().String(),
		PoleID:        in.PoleID,
		Name:          in.Name,
		Price:         in.Price,
		EffectiveFrom: in.EffectiveFrom,
		EffectiveTo:   in.EffectiveTo,
		StartMinute:   in.StartMinute,
		EndMinute:     in.EndMinute,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.validate(ctx, rule, ""); err != nil {
		return nil, err
	}

	if err := s.rules.Save(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to save price rule: %w", err)
	}

	s.log.Info("price rule created",
		zap.String("rule_id", rule.ID),
		zap.String("pole_id", rule.PoleID),
		zap.String("name", string(rule.Name)),
		zap.Float64("price", rule.Price),
	)
	return rule, nil
}

func (s *Service) Update(ctx context.Context, vendorID, ruleID string, in ports.UpdatePriceRuleInput) (*domain.PriceRule, error) {
	rule, err := s.guard.VendorOwnsPriceRule(ctx, ruleID, vendorID)
	if err != nil {
		return nil, err
	}

	merged := *rule
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.EffectiveFrom != nil {
		merged.EffectiveFrom = *in.EffectiveFrom
	}
	if in.EffectiveTo != nil {
		merged.EffectiveTo = *in.EffectiveTo
	}
	if in.StartMinute != nil {
		merged.StartMinute = *in.StartMinute
	}
	if in.EndMinute != nil {
		merged.EndMinute = *in.EndMinute
	}
	merged.UpdatedAt = time.Now()

	// The rule under update is excluded from the overlap scan.
	if err := s.validate(ctx, &merged, rule.ID); err != nil {
		return nil, err
	}

	if err := s.rules.Save(ctx, &merged); err != nil {
		return nil, fmt.Errorf("failed to save price rule: %w", err)
	}

	s.log.Info("price rule updated", zap.String("rule_id", ruleID))
	return &merged, nil
}

func (s *Service) Delete(ctx context.Context, vendorID, ruleID string) error {
	if _, err := s.guard.VendorOwnsPriceRule(ctx, ruleID, vendorID); err != nil {
		return err
	}
	if err := s.rules.Delete(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete price rule: %w", err)
	}
	s.log.Info("price rule deleted", zap.String("rule_id", ruleID))
	return nil
}

func (s *Service) ListByPole(ctx context.Context, poleID string) ([]domain.PriceRule, error) {
	return s.rules.FindByPoleID(ctx, poleID)
}

// ResolveActiveRate returns the rule covering the instant, or nil when no
// rule applies. The non-overlap invariant guarantees at most one match.
func (s *Service) ResolveActiveRate(ctx context.Context, poleID string, name domain.PriceName, at time.Time) (*domain.PriceRule, error) {
	rules, err := s.rules.FindByPoleAndName(ctx, poleID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load price rules: %w", err)
	}
	for i := range rules {
		if rules[i].ActiveAt(at) {
			return &rules[i], nil
		}
	}
	return nil, nil
}

func (s *Service) validate(ctx context.Context, rule *domain.PriceRule, excludeID string) error {
	if rule.Name != domain.PriceNameCharging && rule.Name != domain.PriceNamePenalty {
		return domain.InvalidInput("unknown price name %q", rule.Name)
	}
	if rule.Price <= 0 {
		return domain.InvalidInput("price must be positive")
	}
	if rule.StartMinute >= rule.EndMinute {
		return domain.InvalidInput("start time %s must precede end time %s", rule.StartMinute, rule.EndMinute)
	}
	if rule.EffectiveTo != nil && rule.EffectiveTo.Before(rule.EffectiveFrom) {
		return domain.InvalidInput("effective_to precedes effective_from")
	}

	existing, err := s.rules.FindByPoleAndName(ctx, rule.PoleID, rule.Name)
	if err != nil {
		return fmt.Errorf("failed to load price rules: %w", err)
	}
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if rule.OverlapsWith(&existing[i]) {
			return domain.Conflict("price rule overlaps rule %s", existing[i].ID)
		}
	}
	return nil
}
