package entity

import "github.com/shopspring/decimal"

type SupplierStatus string

const (
	SupplierActive   SupplierStatus = "active"
	SupplierInactive SupplierStatus = "inactive"
)

type MarkupType string

const (
	MarkupFlat       MarkupType = "flat"
	MarkupPercentage MarkupType = "percentage"
)

// Client is the contractor placing requests.
type Client struct {
	ID        int64    `gorm:"primaryKey"`
	Name      string   `gorm:"not null"`
	Contact   string   `gorm:"not null;uniqueIndex"` // WhatsApp handle
	Company   string   `gorm:"not null;default:''"`
	District  District `gorm:"not null;default:''"`
	CreatedAt int64    `gorm:"not null;autoCreateTime:false"`
}

type Supplier struct {
	ID        int64          `gorm:"primaryKey"`
	Name      string         `gorm:"not null"`
	Company   string         `gorm:"not null;default:''"`
	Contact   string         `gorm:"not null;default:''"`
	District  District       `gorm:"not null;default:'';index"`
	Status    SupplierStatus `gorm:"not null;default:'active'"`
	CreatedAt int64          `gorm:"not null;autoCreateTime:false"`
}

func (s *Supplier) IsActive() bool {
	return s.Status == SupplierActive
}

// Material is a catalog entry. MinPrice and MaxPrice bound the market price band.
type Material struct {
	ID        int64               `gorm:"primaryKey"`
	Name      string              `gorm:"not null"`
	Unit      string              `gorm:"not null;default:''"`
	Category  string              `gorm:"not null;default:''"`
	MinPrice  decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	MaxPrice  decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Active    bool                `gorm:"not null;default:true"`
	CreatedAt int64               `gorm:"not null;autoCreateTime:false"`
}

// MaterialSupplier is a supplier's standing offer for a material.
type MaterialSupplier struct {
	ID            int64           `gorm:"primaryKey"`
	MaterialID    int64           `gorm:"not null;index"`
	SupplierID    int64           `gorm:"not null;index"`
	SupplierPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Position      int             `gorm:"not null;default:1"`

	// Relations
	Supplier Supplier `gorm:"foreignKey:SupplierID;references:ID"`
}

// Settings holds the platform-wide markup configuration.
type Settings struct {
	ID            int64           `gorm:"primaryKey"`
	DefaultMarkup decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MarkupType    MarkupType      `gorm:"not null;default:'percentage'"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	UpdatedAt     int64           `gorm:"not null;autoUpdateTime:false"`
}

// DefaultSettings is used while no settings row has been stored yet.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultMarkup: decimal.NewFromInt(15),
		MarkupType:    MarkupPercentage,
		TaxRate:       decimal.Zero,
	}
}
