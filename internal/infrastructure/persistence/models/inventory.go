package models

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ImportModel is the persistence model for inventory.Import
type ImportModel struct {
	AggregateModel
	SupplierID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	SupplierName string            `gorm:"type:varchar(200);not null"`
	Note         string            `gorm:"type:text"`
	CreatedBy    *uuid.UUID        `gorm:"type:uuid"`
	ImportDate   time.Time         `gorm:"not null;index"`
	Items        []ImportItemModel `gorm:"foreignKey:ImportID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ImportModel) TableName() string {
	return "imports"
}

// ImportItemModel is one import line
type ImportItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ImportID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	Quantity    int64     `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ImportItemModel) TableName() string {
	return "import_items"
}

// ToDomain converts the model and its loaded items to a domain Import
func (m *ImportModel) ToDomain() *inventory.Import {
	imp := &inventory.Import{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		Items:             make([]inventory.ImportItem, len(m.Items)),
		Note:              m.Note,
		CreatedBy:         m.CreatedBy,
		ImportDate:        m.ImportDate,
	}
	for i, it := range m.Items {
		imp.Items[i] = inventory.ImportItem{
			ID:          it.ID,
			ImportID:    it.ImportID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   valueobject.Money(it.UnitPrice),
		}
	}
	return imp
}

// ImportModelFromDomain creates a model, items included, from a domain Import
func ImportModelFromDomain(imp *inventory.Import) *ImportModel {
	m := &ImportModel{
		SupplierID:   imp.SupplierID,
		SupplierName: imp.SupplierName,
		Note:         imp.Note,
		CreatedBy:    imp.CreatedBy,
		ImportDate:   imp.ImportDate,
		Items:        make([]ImportItemModel, len(imp.Items)),
	}
	m.FromDomainAggregateRoot(imp.BaseAggregateRoot)
	for i, it := range imp.Items {
		m.Items[i] = ImportItemModel{
			ID:          it.ID,
			ImportID:    imp.ID,
			Position:    i,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.Int64(),
		}
	}
	return m
}

// MovementLogModel is one row of the append-only stock movement log
type MovementLogModel struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type        inventory.MovementType `gorm:"type:varchar(20);not null"`
	Quantity    int64                  `gorm:"not null"`
	StockBefore int64                  `gorm:"not null"`
	StockAfter  int64                  `gorm:"not null"`
	Note        string                 `gorm:"type:text"`
	SourceType  inventory.SourceType   `gorm:"type:varchar(30);not null;default:'manual'"`
	SourceID    *uuid.UUID             `gorm:"type:uuid;index"`
	CreatedBy   *uuid.UUID             `gorm:"type:uuid"`
	CreatedAt   time.Time              `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (MovementLogModel) TableName() string {
	return "inventory_logs"
}

// ToDomain converts the model to a domain MovementLog
func (m *MovementLogModel) ToDomain() inventory.MovementLog {
	return inventory.MovementLog{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Note:        m.Note,
		SourceType:  m.SourceType,
		SourceID:    m.SourceID,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// MovementLogModelFromDomain creates a model from a domain MovementLog
func MovementLogModelFromDomain(l *inventory.MovementLog) *MovementLogModel {
	return &MovementLogModel{
		ID:          l.ID,
		ProductID:   l.ProductID,
		Type:        l.Type,
		Quantity:    l.Quantity,
		StockBefore: l.StockBefore,
		StockAfter:  l.StockAfter,
		Note:        l.Note,
		SourceType:  l.SourceType,
		SourceID:    l.SourceID,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
	}
}
