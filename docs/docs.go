// Package docs registers the OpenAPI document served under /swagger.
// The checked-in template carries the API info only; run `go generate ./cmd/server`
// to rebuild it from the handler annotations.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "openapi": "3.1.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.Host}}{{.BasePath}}"
        }
    ],
    "tags": [
        {"name": "products", "description": "Catalog products, pricing rules and price quotes"},
        {"name": "tax-rules", "description": "Tax rules assigned to products"},
        {"name": "orders", "description": "Sales orders and invoices"},
        {"name": "purchases", "description": "Stock purchases"},
        {"name": "ledger", "description": "Customer and supplier account ledgers"},
        {"name": "system", "description": "Health"}
    ],
    "paths": {}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Tradecore API",
	Description:      "Catalog pricing, stock-aware orders and purchases, and account ledgers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
