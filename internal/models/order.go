package models

import "math"

type OrderKind string

const (
	OrderKindTable    OrderKind = "table"
	OrderKindDelivery OrderKind = "delivery"
)

type OrderItem struct {
	ID       int64   `json:"id"`
	FoodName string  `json:"foodName"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Amount is price × quantity rounded to cents.
func (i OrderItem) Amount() float64 {
	return float64(i.amountCents()) / 100
}

func (i OrderItem) amountCents() int64 {
	return int64(math.Round(i.Price * float64(i.Quantity) * 100))
}

// Order is either a table order (TableNumber set) or a delivery order (Customer* set).
// Status true means completed.
type Order struct {
	ID              int64       `json:"id"`
	TableNumber     int         `json:"tableNumber,omitempty"`
	CustomerName    string      `json:"customerName,omitempty"`
	CustomerPhone   string      `json:"customerPhone,omitempty"`
	CustomerAddress string      `json:"customerAddress,omitempty"`
	Total           float64     `json:"total"`
	Status          bool        `json:"status"`
	Items           []OrderItem `json:"items"`
}

// ComputedTotal sums the per-line amounts; each line is rounded to cents first,
// the same way the invoice table shows them.
func (o Order) ComputedTotal() float64 {
	var cents int64
	for _, it := range o.Items {
		cents += it.amountCents()
	}
	return float64(cents) / 100
}
