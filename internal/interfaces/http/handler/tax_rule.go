package handler

import (
	catalogapp "github.com/erp/tradecore/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// TaxRuleHandler handles tax rule endpoints
type TaxRuleHandler struct {
	BaseHandler
	taxRuleService TaxRuleService
}

// NewTaxRuleHandler creates a new TaxRuleHandler
func NewTaxRuleHandler(taxRuleService TaxRuleService) *TaxRuleHandler {
	return &TaxRuleHandler{taxRuleService: taxRuleService}
}

// Create godoc
// @ID           createCatalogTaxRule
// @Summary      Create a tax rule
// @Tags         tax-rules
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateTaxRuleRequest true "Tax rule"
// @Success      201 {object} APIResponse[catalogapp.TaxRuleResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/tax-rules [post]
func (h *TaxRuleHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTaxRuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.taxRuleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rule)
}

// List godoc
// @ID           listCatalogTaxRules
// @Summary      List tax rules
// @Tags         tax-rules
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.TaxRuleResponse]
// @Router       /catalog/tax-rules [get]
func (h *TaxRuleHandler) List(c *gin.Context) {
	rules, err := h.taxRuleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rules)
}
