package models

import (
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel holds the identity columns shared by every table
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseModelOf(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func (m BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// AggregateModel adds the aggregate version column. Orders, purchases and
// ledger accounts embed it; line items and ledger entries embed BaseModel.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

func aggregateModelOf(a shared.BaseAggregateRoot) AggregateModel {
	return AggregateModel{BaseModel: baseModelOf(a.BaseEntity), Version: a.Version}
}

// root rebuilds the aggregate header; the event queue starts empty
func (m AggregateModel) root() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.BaseModel.entity(), Version: m.Version}
}
