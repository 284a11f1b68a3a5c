package cart

import "shopelite/internal/product"

// MaxQuantity is the per-line ceiling the UI enforces. The aggregate itself
// does not clamp; callers do.
const MaxQuantity = 10

type CartItem struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// State is the whole cart snapshot. TotalItems and TotalPrice are always
// derived from Items by calculateTotals.
type State struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice int64      `json:"totalPrice"`
}

// Empty returns the initial cart state.
func Empty() State {
	return State{Items: []CartItem{}}
}

// Clone copies the item list so the result shares nothing mutable with s.
// Products are immutable once fetched and are shared.
func (s State) Clone() State {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, TotalItems: s.TotalItems, TotalPrice: s.TotalPrice}
}

func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Quantity returns the quantity held for productID, or 0.
func (s State) Quantity(productID int) int {
	if i := s.indexOf(productID); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}

func (s State) indexOf(productID int) int {
	for i, it := range s.Items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
