package entity

import "github.com/shopspring/decimal"

// QuoteLogEntry records one supplier offer accepted in one quote submission.
// Rows are only ever inserted.
type QuoteLogEntry struct {
	ID         int64           `gorm:"primaryKey"`
	RequestID  int64           `gorm:"not null;index"` // References: requests(id)
	LineID     int64           `gorm:"not null"`
	Slot       int             `gorm:"not null"`
	SupplierID int64           `gorm:"not null;index"` // References: suppliers(id)
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes      string          `gorm:"not null;default:''"`
	CreatedAt  int64           `gorm:"not null;autoCreateTime:false"`
}
