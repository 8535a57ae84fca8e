package persistence

import "strings"

// sortDirection normalizes a user-supplied direction; anything but ASC is DESC
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// orderClause builds a "field DIR" clause for gorm's Order. The field must
// be in allowed, otherwise defaultField is used, so user input never reaches
// the SQL text unchecked.
func orderClause(orderBy, orderDir string, allowed map[string]bool, defaultField, defaultDir string) string {
	field := defaultField
	if f := strings.TrimSpace(orderBy); allowed[f] {
		field = f
	}
	dir := defaultDir
	if strings.TrimSpace(orderDir) != "" {
		dir = sortDirection(orderDir)
	}
	return field + " " + dir
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"code":              true,
	"name":              true,
	"unit_price":        true,
	"last_buying_price": true,
	"status":            true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"movement_type": true,
	"quantity":      true,
	"balance_after": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"customer_ref": true,
	"order_date":   true,
	"grand_total":  true,
	"status":       true,
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"supplier_ref":  true,
	"purchase_date": true,
	"grand_total":   true,
	"reference":     true,
}

// LedgerAccountSortFields contains allowed sort fields for ledger accounts
var LedgerAccountSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"phone":         true,
	"total_balance": true,
}
