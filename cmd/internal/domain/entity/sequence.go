package entity

// Sequence is a named monotonic counter.
type Sequence struct {
	Name  string `gorm:"primaryKey;autoIncrement:false"`
	Value int64  `gorm:"not null"`
}
