package pricing

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/mocks"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
	"github.com/duongdanghoc/charging-station-manager/internal/service/access"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type pricingFixture struct {
	rules   *mocks.MockPriceRuleRepository
	service ports.PricingService
}

func newPricingFixture() *pricingFixture {
	f := &pricingFixture{rules: &mocks.MockPriceRuleRepository{}}

	stations := &mocks.MockStationRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Station, error) {
			return &domain.Station{ID: id, VendorID: "vend-1"}, nil
		},
	}
	poles := &mocks.MockPoleRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Pole, error) {
			return &domain.Pole{ID: id, StationID: "st-1"}, nil
		},
	}
	guard := access.NewGuard(stations, poles, &mocks.MockConnectorRepository{}, f.rules, &mocks.MockVehicleRepository{}, &mocks.MockSessionRepository{}, newTestLogger())
	f.service = NewService(f.rules, guard, newTestLogger())
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock(s string) domain.MinuteOfDay {
	m, err := domain.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

func baseRuleInput() ports.CreatePriceRuleInput {
	return ports.CreatePriceRuleInput{
		PoleID:        "pole-1",
		Name:          domain.PriceNameCharging,
		Price:         3500,
		EffectiveFrom: date(2026, time.January, 1),
		StartMinute:   clock("08:00"),
		EndMinute:     clock("18:00"),
	}
}

func TestCreateRule_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()
	var saved *domain.PriceRule
	f.rules.SaveFunc = func(ctx context.Context, r *domain.PriceRule) error {
		saved = r
		return nil
	}

	// Act
	rule, err := f.service.Create(ctx, "vend-1", baseRuleInput())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rule.ID == "" {
		t.Error("expected rule to get an ID")
	}
	if saved == nil {
		t.Fatal("expected rule to be persisted")
	}
}

func TestCreateRule_InvalidTimeWindow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()
	in := baseRuleInput()
	in.StartMinute = clock("18:00")
	in.EndMinute = clock("08:00")

	// Act
	_, err := f.service.Create(ctx, "vend-1", in)

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestCreateRule_NonPositivePrice(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()
	in := baseRuleInput()
	in.Price = 0

	// Act
	_, err := f.service.Create(ctx, "vend-1", in)

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestCreateRule_EffectiveToBeforeFrom(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()
	in := baseRuleInput()
	to := date(2025, time.December, 1)
	in.EffectiveTo = &to

	// Act
	_, err := f.service.Create(ctx, "vend-1", in)

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestCreateRule_OverlapRejected(t *testing.T) {
	// Arrange: an open-ended rule already covers 06:00-12:00.
	ctx := context.Background()
	f := newPricingFixture()
	f.rules.FindByPoleAndNameFunc = func(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error) {
		return []domain.PriceRule{{
			ID:            "rule-1",
			PoleID:        poleID,
			Name:          name,
			Price:         3000,
			EffectiveFrom: date(2026, time.January, 1),
			StartMinute:   clock("06:00"),
			EndMinute:     clock("12:00"),
		}}, nil
	}

	// Act: 08:00-18:00 intersects the existing daily window.
	_, err := f.service.Create(ctx, "vend-1", baseRuleInput())

	// Assert
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateRule_AdjacentWindowsAllowed(t *testing.T) {
	// Arrange: windows sharing a boundary minute do not overlap.
	ctx := context.Background()
	f := newPricingFixture()
	f.rules.FindByPoleAndNameFunc = func(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error) {
		return []domain.PriceRule{{
			ID:            "rule-1",
			PoleID:        poleID,
			Name:          name,
			Price:         3000,
			EffectiveFrom: date(2026, time.January, 1),
			StartMinute:   clock("00:00"),
			EndMinute:     clock("08:00"),
		}}, nil
	}

	// Act
	_, err := f.service.Create(ctx, "vend-1", baseRuleInput())

	// Assert
	if err != nil {
		t.Fatalf("expected no error for adjacent windows, got %v", err)
	}
}

func TestCreateRule_DifferentNamesNeverCollide(t *testing.T) {
	// Arrange: the repository is queried per name, so a PENALTY rule in
	// the same window is invisible to a CHARGING overlap scan.
	ctx := context.Background()
	f := newPricingFixture()
	f.rules.FindByPoleAndNameFunc = func(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error) {
		if name == domain.PriceNameCharging {
			return []domain.PriceRule{}, nil
		}
		t.Fatalf("expected scan for CHARGING only, got %s", name)
		return nil, nil
	}

	// Act
	_, err := f.service.Create(ctx, "vend-1", baseRuleInput())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestUpdateRule_ExcludesSelfFromOverlapScan(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()
	existing := domain.PriceRule{
		ID:            "rule-1",
		PoleID:        "pole-1",
		Name:          domain.PriceNameCharging,
		Price:         3000,
		EffectiveFrom: date(2026, time.January, 1),
		StartMinute:   clock("08:00"),
		EndMinute:     clock("18:00"),
	}
	f.rules.FindByIDFunc = func(ctx context.Context, id string) (*domain.PriceRule, error) {
		r := existing
		return &r, nil
	}
	f.rules.FindByPoleAndNameFunc = func(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error) {
		return []domain.PriceRule{existing}, nil
	}
	var saved *domain.PriceRule
	f.rules.SaveFunc = func(ctx context.Context, r *domain.PriceRule) error {
		saved = r
		return nil
	}

	// Act: shrinking the rule's own window must not collide with itself.
	newPrice := 4200.0
	rule, err := f.service.Update(ctx, "vend-1", "rule-1", ports.UpdatePriceRuleInput{Price: &newPrice})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rule.Price != 4200 {
		t.Errorf("expected price 4200, got %f", rule.Price)
	}
	if saved == nil {
		t.Error("expected rule to be persisted")
	}
}

func TestUpdateRule_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()

	// Act
	price := 5000.0
	_, err := f.service.Update(ctx, "vend-1", "missing", ports.UpdatePriceRuleInput{Price: &price})

	// Assert
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestResolveActiveRate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()
	f.rules.FindByPoleAndNameFunc = func(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error) {
		return []domain.PriceRule{
			{
				ID:            "day",
				Price:         4000,
				EffectiveFrom: date(2026, time.January, 1),
				StartMinute:   clock("08:00"),
				EndMinute:     clock("20:00"),
			},
			{
				ID:            "night",
				Price:         2500,
				EffectiveFrom: date(2026, time.January, 1),
				StartMinute:   clock("20:00"),
				EndMinute:     clock("23:59"),
			},
		}, nil
	}

	// Act
	at := time.Date(2026, time.March, 10, 21, 30, 0, 0, time.UTC)
	rule, err := f.service.ResolveActiveRate(ctx, "pole-1", domain.PriceNameCharging, at)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rule == nil || rule.ID != "night" {
		t.Fatalf("expected the night rule, got %+v", rule)
	}
}

func TestResolveActiveRate_NoMatch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newPricingFixture()

	// Act
	rule, err := f.service.ResolveActiveRate(ctx, "pole-1", domain.PriceNameCharging, time.Now())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rule != nil {
		t.Errorf("expected nil rule, got %+v", rule)
	}
}
