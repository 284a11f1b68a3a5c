package order

import (
	"strings"

	"shopelite/internal/cart"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
)

const DefaultCountry = "Россия"

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Label is the customer-facing status text.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "В обработке"
	case StatusProcessing:
		return "Обрабатывается"
	case StatusShipped:
		return "Отправлен"
	default:
		return "Доставлен"
	}
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is immutable once built. Items is a copy of the cart lines at
// checkout time.
type Order struct {
	ID              string          `json:"id"`
	Items           []cart.CartItem `json:"items"`
	Total           int64           `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       string          `json:"createdAt"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// CheckoutForm is what the customer fills in at checkout. Email is only
// validated, it is not part of the order.
type CheckoutForm struct {
	FullName   string
	Email      string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (f CheckoutForm) ShippingAddress() ShippingAddress {
	country := strings.TrimSpace(f.Country)
	if country == "" {
		country = DefaultCountry
	}
	return ShippingAddress{
		FullName:   strings.TrimSpace(f.FullName),
		Address:    strings.TrimSpace(f.Address),
		City:       strings.TrimSpace(f.City),
		State:      strings.TrimSpace(f.State),
		PostalCode: strings.TrimSpace(f.PostalCode),
		Country:    country,
	}
}
