package catalog

import (
	"context"
	"strings"

	"github.com/erp/tradecore/internal/domain/catalog"
	"go.uber.org/zap"
)

// TaxRuleService manages tax rules
type TaxRuleService struct {
	taxRuleRepo catalog.TaxRuleRepository
	logger      *zap.Logger
}

// NewTaxRuleService creates a new TaxRuleService
func NewTaxRuleService(taxRuleRepo catalog.TaxRuleRepository, logger *zap.Logger) *TaxRuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaxRuleService{taxRuleRepo: taxRuleRepo, logger: logger}
}

// Create creates a new tax rule
func (s *TaxRuleService) Create(ctx context.Context, req CreateTaxRuleRequest) (*TaxRuleResponse, error) {
	rule, err := catalog.NewTaxRule(strings.TrimSpace(req.Title), req.Rate, catalog.TaxType(req.Type))
	if err != nil {
		return nil, err
	}
	if err := s.taxRuleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	s.logger.Info("tax rule created",
		zap.String("tax_rule_id", rule.ID.String()),
		zap.String("type", string(rule.Type)),
		zap.String("rate", rule.Rate.String()),
	)
	response := ToTaxRuleResponse(rule)
	return &response, nil
}

// List returns every tax rule
func (s *TaxRuleService) List(ctx context.Context) ([]TaxRuleResponse, error) {
	rules, err := s.taxRuleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TaxRuleResponse, len(rules))
	for i := range rules {
		out[i] = ToTaxRuleResponse(&rules[i])
	}
	return out, nil
}
