package cart

import (
	"fmt"

	"shopelite/internal/product"
)

// The functions below never modify their input state. Every result has its
// totals recomputed from scratch.

// AddItem merges quantity into the line for p, or appends a new line.
func AddItem(s State, p product.Product, quantity int) (State, error) {
	if quantity < 1 {
		return s, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	items := s.Clone().Items
	if i := s.indexOf(p.ID); i >= 0 {
		items[i].Quantity += quantity
	} else {
		items = append(items, CartItem{Product: p, Quantity: quantity})
	}
	return withTotals(items), nil
}

// RemoveItem drops the line for productID. Absent ids leave s unchanged.
func RemoveItem(s State, productID int) State {
	if s.indexOf(productID) < 0 {
		return s
	}

	items := make([]CartItem, 0, len(s.Items)-1)
	for _, it := range s.Items {
		if it.Product.ID != productID {
			items = append(items, it)
		}
	}
	return withTotals(items)
}

// UpdateQuantity sets the quantity verbatim; quantity <= 0 removes the line.
func UpdateQuantity(s State, productID, quantity int) State {
	if quantity <= 0 {
		return RemoveItem(s, productID)
	}

	i := s.indexOf(productID)
	if i < 0 {
		return s
	}

	items := s.Clone().Items
	items[i].Quantity = quantity
	return withTotals(items)
}

func Clear() State {
	return Empty()
}

// Rebuild repairs a state read from storage: lines with quantity < 1 are
// dropped, duplicate product lines are merged into the first occurrence and
// totals are re-derived.
func Rebuild(s State) State {
	items := make([]CartItem, 0, len(s.Items))
	pos := make(map[int]int, len(s.Items))
	for _, it := range s.Items {
		if it.Quantity < 1 {
			continue
		}
		if i, ok := pos[it.Product.ID]; ok {
			items[i].Quantity += it.Quantity
			continue
		}
		pos[it.Product.ID] = len(items)
		items = append(items, it)
	}
	return withTotals(items)
}

func withTotals(items []CartItem) State {
	totalItems, totalPrice := calculateTotals(items)
	return State{Items: items, TotalItems: totalItems, TotalPrice: totalPrice}
}

func calculateTotals(items []CartItem) (int, int64) {
	var totalItems int
	var totalPrice int64
	for _, it := range items {
		totalItems += it.Quantity
		totalPrice += it.Product.Price * int64(it.Quantity)
	}
	return totalItems, totalPrice
}
