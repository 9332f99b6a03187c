package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"xero_backend/internal/clients"
	"xero_backend/internal/models"
)

// --- Custom Service Errors for Pricing ---
var (
	ErrPricingItemNotFound = errors.New("item not found in inventory")
	ErrPricingRuleNotFound = errors.New("pricing rule not found")
	ErrPricingRemoteCall   = errors.New("remote call failed")
)

// Rule names, applied in this order.
const (
	RuleNearExpiration     = "near_expiration"
	RuleLowStockHighDemand = "low_stock_high_demand"
)

const nearExpirationWindow = 3 * 24 * time.Hour

// LedgerActionPriceAdjustment labels ledger entries written by AdjustPrice.
const LedgerActionPriceAdjustment = "price_adjustment"

// --- PricingService Interface ---
type PricingService interface {
	// AdjustPrice fetches the item from the inventory service, applies the
	// active rules in order and records the adjustment in the ledger. If
	// either remote call fails, the whole operation fails; there is no
	// partial commit and no retry.
	AdjustPrice(ctx context.Context, itemID, actor string) (*models.PriceAdjustment, error)

	ListRules() []models.PricingRule
	SetRuleActive(ruleName string, active bool) (*models.PricingRule, error)
}

type pricingRule struct {
	models.PricingRule
	// factor applied to the price when the rule matches the item.
	factor  float64
	matches func(item *models.InventoryItem, now time.Time, lowStockThreshold int) bool
}

type pricingService struct {
	mu                sync.Mutex
	rules             []*pricingRule
	inventory         clients.InventoryClient
	ledger            clients.LedgerClient
	lowStockThreshold int
}

// NewPricingService creates a PricingService with the default rule set and
// the injected collaborator clients.
func NewPricingService(inventory clients.InventoryClient, ledger clients.LedgerClient, lowStockThreshold int) PricingService {
	return &pricingService{
		inventory:         inventory,
		ledger:            ledger,
		lowStockThreshold: lowStockThreshold,
		rules: []*pricingRule{
			{
				PricingRule: models.PricingRule{
					RuleName:        RuleNearExpiration,
					RuleDescription: "Reduce price by 30% if item is within 3 days of expiration.",
					Active:          true,
				},
				factor: 0.7,
				matches: func(item *models.InventoryItem, now time.Time, _ int) bool {
					return !item.ExpirationDate.After(now.Add(nearExpirationWindow))
				},
			},
			{
				PricingRule: models.PricingRule{
					RuleName:        RuleLowStockHighDemand,
					RuleDescription: "Increase price by 10% if demand is high and stock is low.",
					Active:          true,
				},
				factor: 1.1,
				matches: func(item *models.InventoryItem, _ time.Time, lowStockThreshold int) bool {
					return item.Quantity > 0 && item.Quantity <= lowStockThreshold
				},
			},
		},
	}
}

func (s *pricingService) AdjustPrice(ctx context.Context, itemID, actor string) (*models.PriceAdjustment, error) {
	item, err := s.inventory.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, clients.ErrRemoteNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrPricingItemNotFound, itemID)
		}
		return nil, fmt.Errorf("%w: fetching item '%s': %v", ErrPricingRemoteCall, itemID, err)
	}

	now := time.Now()
	newPrice := item.Price

	s.mu.Lock()
	for _, rule := range s.rules {
		if rule.Active && rule.matches(item, now, s.lowStockThreshold) {
			newPrice *= rule.factor
		}
	}
	s.mu.Unlock()

	adjustment := &models.PriceAdjustment{
		ItemID:   itemID,
		OldPrice: item.Price,
		NewPrice: newPrice,
	}

	details := fmt.Sprintf("price adjusted for item '%s': %.2f -> %.2f (actor %s)",
		itemID, adjustment.OldPrice, adjustment.NewPrice, actor)
	if err := s.ledger.Record(ctx, uuid.NewString(), LedgerActionPriceAdjustment, details); err != nil {
		return nil, fmt.Errorf("%w: recording adjustment for item '%s': %v", ErrPricingRemoteCall, itemID, err)
	}

	return adjustment, nil
}

func (s *pricingService) ListRules() []models.PricingRule {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules := make([]models.PricingRule, 0, len(s.rules))
	for _, rule := range s.rules {
		rules = append(rules, rule.PricingRule)
	}
	return rules
}

func (s *pricingService) SetRuleActive(ruleName string, active bool) (*models.PricingRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rule := range s.rules {
		if rule.RuleName == ruleName {
			rule.Active = active
			updated := rule.PricingRule
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrPricingRuleNotFound, ruleName)
}
