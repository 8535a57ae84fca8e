package router

import (
	"github.com/erp/tradecore/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the API handlers mounted by RegisterAPI
type Handlers struct {
	Product  *handler.ProductHandler
	TaxRule  *handler.TaxRuleHandler
	Order    *handler.OrderHandler
	Purchase *handler.PurchaseHandler
	Ledger   *handler.LedgerHandler
}

// RegisterAPI builds the catalog, trade and ledger groups and registers them on r.
// idempotency guards every state-changing trade and ledger route; it may be nil.
func RegisterAPI(r *Router, h Handlers, idempotency gin.HandlerFunc) []*DomainGroup {
	guard := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if idempotency == nil {
			return handlers
		}
		return append([]gin.HandlerFunc{idempotency}, handlers...)
	}

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.POST("/products", h.Product.Create)
	catalog.GET("/products", h.Product.List)
	catalog.GET("/products/:id", h.Product.GetByID)
	catalog.PUT("/products/:id", h.Product.Update)
	catalog.PUT("/products/:id/pricing", h.Product.UpdatePricing)
	catalog.GET("/products/:id/price", h.Product.QuotePrice)
	catalog.GET("/products/:id/movements", h.Product.ListMovements)
	catalog.POST("/tax-rules", h.TaxRule.Create)
	catalog.GET("/tax-rules", h.TaxRule.List)

	trade := NewDomainGroup("trade", "/trade")
	orders := trade.Group("orders", "/orders")
	orders.POST("", guard(h.Order.PlaceOrder)...)
	orders.GET("", h.Order.ListOrders)
	orders.GET("/:id", h.Order.GetOrder)
	orders.PUT("/:id/status", guard(h.Order.SetStatus)...)
	orders.GET("/:id/invoice", h.Order.GetInvoice)
	purchases := trade.Group("purchases", "/purchases")
	purchases.POST("", guard(h.Purchase.RecordPurchase)...)
	purchases.GET("", h.Purchase.ListPurchases)
	purchases.GET("/:id", h.Purchase.GetPurchase)

	ledger := NewDomainGroup("ledger", "/ledger")
	accounts := ledger.Group("accounts", "/accounts")
	accounts.POST("", h.Ledger.CreateAccount)
	accounts.GET("", h.Ledger.ListAccounts)
	accounts.GET("/:id", h.Ledger.GetAccount)
	accounts.PUT("/:id", h.Ledger.UpdateAccount)
	accounts.POST("/:id/transactions", guard(h.Ledger.RecordEntry)...)
	accounts.GET("/:id/transactions", h.Ledger.ListTransactions)
	accounts.POST("/:id/rebuild", h.Ledger.RebuildBalance)
	transactions := ledger.Group("transactions", "/transactions")
	transactions.PUT("/:id", guard(h.Ledger.EditEntry)...)
	transactions.DELETE("/:id", guard(h.Ledger.DeleteEntry)...)

	groups := []*DomainGroup{catalog, trade, ledger}
	for _, g := range groups {
		r.Register(g)
	}
	return groups
}
