// Package models contains GORM persistence models for the trade and ledger
// aggregates. They are kept apart from the domain types so order lines,
// invoices and ledger entries can carry table mappings without leaking ORM
// tags into the domain.
//
// Catalog and inventory domain types carry their own GORM tags and are
// persisted directly.
package models
