package entity

import "github.com/shopspring/decimal"

const MaxSupplierSlots = 5

type SupplierSlot struct {
	SupplierID int64           `json:"supplierId"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Valid reports whether the slot names a supplier with a positive unit price.
func (s *SupplierSlot) Valid() bool {
	return s != nil && s.SupplierID > 0 && s.UnitPrice.IsPositive()
}

// SupplierPrices is the fixed five-slot offer record of a request line.
// The JSON shape is consumed by the back-office UI, keep the keys stable.
type SupplierPrices struct {
	Supplier1       *SupplierSlot `json:"supplier1,omitempty"`
	Supplier2       *SupplierSlot `json:"supplier2,omitempty"`
	Supplier3       *SupplierSlot `json:"supplier3,omitempty"`
	Supplier4       *SupplierSlot `json:"supplier4,omitempty"`
	Supplier5       *SupplierSlot `json:"supplier5,omitempty"`
	SuppliersToShow int           `json:"suppliersToShow"`
}

func (p *SupplierPrices) slots() [MaxSupplierSlots]**SupplierSlot {
	return [MaxSupplierSlots]**SupplierSlot{
		&p.Supplier1,
		&p.Supplier2,
		&p.Supplier3,
		&p.Supplier4,
		&p.Supplier5,
	}
}

// Slot returns the offer at position n (1-based), or nil.
func (p *SupplierPrices) Slot(n int) *SupplierSlot {
	if n < 1 || n > MaxSupplierSlots {
		return nil
	}
	return *p.slots()[n-1]
}

// SetSlot stores an offer at position n (1-based). Out of range positions are ignored.
func (p *SupplierPrices) SetSlot(n int, slot *SupplierSlot) {
	if n < 1 || n > MaxSupplierSlots {
		return
	}
	*p.slots()[n-1] = slot
}

// Populated lists the occupied positions in ascending order.
func (p *SupplierPrices) Populated() []int {
	var out []int
	for i, s := range p.slots() {
		if *s != nil {
			out = append(out, i+1)
		}
	}
	return out
}

// HighestSlot is the last occupied position, 0 when empty.
func (p *SupplierPrices) HighestSlot() int {
	populated := p.Populated()
	if len(populated) == 0 {
		return 0
	}
	return populated[len(populated)-1]
}
