package storefront

import (
	"context"

	"shopelite/internal/cart"
	"shopelite/internal/logger"
	"shopelite/internal/order"
	"shopelite/internal/payment"

	"go.uber.org/zap"
)

// Checkout validates the form, builds the order from the current cart and
// clears the cart once the order exists. A rejected form changes nothing.
// An empty cart is refused here, as the checkout page does; the order
// builder itself would accept it.
func (a *App) Checkout(ctx context.Context, form order.CheckoutForm, paymentMethod string) (order.Order, error) {
	if errs := order.ValidateCheckout(form); len(errs) > 0 {
		return order.Order{}, errs
	}

	snapshot := a.Cart.Snapshot()
	if snapshot.IsEmpty() {
		return order.Order{}, ErrEmptyCart
	}

	if paymentMethod == "" {
		paymentMethod = payment.MethodCashOnDelivery
	}

	o := a.Orders.CreateOrder(ctx, snapshot, form.ShippingAddress(), paymentMethod)
	a.Cart.Clear(ctx)

	logger.FromCtx(ctx).Info("checkout completed", zap.String("order_id", o.ID))
	return o, nil
}

// CheckoutWithCard obtains a payment token before placing the order. The
// token only proves the card was accepted; the order records the method
// label alone.
func (a *App) CheckoutWithCard(ctx context.Context, form order.CheckoutForm, card payment.CardDetails) (order.Order, error) {
	if errs := order.ValidateCheckout(form); len(errs) > 0 {
		return order.Order{}, errs
	}
	if a.Cart.Snapshot().IsEmpty() {
		return order.Order{}, ErrEmptyCart
	}

	if _, err := a.Payments.CreatePaymentToken(ctx, card); err != nil {
		return order.Order{}, err
	}

	return a.Checkout(ctx, form, payment.MethodCard)
}

// AddToCart looks the product up and clamps quantity to the selector
// maximum before handing it to the cart. Non-positive quantities are left
// for the cart to reject.
func (a *App) AddToCart(ctx context.Context, productID, quantity int) (cart.State, error) {
	p, ok := a.Catalog.FetchProductByID(ctx, productID)
	if !ok {
		return a.Cart.Snapshot(), ErrProductUnavailable
	}
	if !p.InStock {
		return a.Cart.Snapshot(), ErrOutOfStock
	}

	return a.Cart.AddItem(ctx, p, min(quantity, cart.MaxQuantity))
}
