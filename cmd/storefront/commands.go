package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shopelite/internal/cart"
	"shopelite/internal/logger"
	"shopelite/internal/order"
	"shopelite/internal/payment"
	"shopelite/internal/product"
	"shopelite/internal/session"
	"shopelite/internal/storefront"
	"shopelite/internal/utils"
)

const usage = `usage: storefront <command> [flags]

catalog:  products [-category c] [-q text] | categories | product -id N
cart:     cart | add -id N [-qty Q] | remove -id N | update -id N -qty Q | clear
account:  register -email e -password p | login -email e -password p | logout | whoami
orders:   checkout -name ... | orders | last-order`

var errUsage = errors.New(usage)

type command func(ctx context.Context, app *storefront.App, args []string, out io.Writer) error

var commands = map[string]command{
	"products":   listProducts,
	"categories": listCategories,
	"product":    showProduct,
	"cart":       showCart,
	"add":        addToCart,
	"remove":     removeFromCart,
	"update":     updateQuantity,
	"clear":      clearCart,
	"register":   register,
	"login":      login,
	"logout":     logout,
	"whoami":     whoami,
	"checkout":   checkout,
	"orders":     listOrders,
	"last-order": lastOrder,
}

func run(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}

	if user, ok := app.Session.CurrentUser(); ok {
		ctx = logger.WithUser(ctx, user)
	}
	return cmd(ctx, app, args[1:], out)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func listProducts(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	fs := newFlagSet("products", out)
	category := fs.String("category", "", "only this category")
	query := fs.String("q", "", "search name, description and category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products := app.Catalog.FetchProducts(ctx)
	if *category != "" {
		products = product.ByCategory(products, *category)
	}
	if *query != "" {
		products = product.Search(products, *query)
	}

	if len(products) == 0 {
		fmt.Fprintln(out, "Товары не найдены")
		return nil
	}
	for _, p := range products {
		stock := ""
		if !p.InStock {
			stock = " (нет в наличии)"
		}
		fmt.Fprintf(out, "%4d  %-40s %14s  ★%.1f (%d)%s\n",
			p.ID, utils.Truncate(p.Name, 40), utils.FormatRUB(p.Price), p.Rating, p.Reviews, stock)
	}
	return nil
}

func listCategories(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	for _, c := range app.Catalog.FetchCategories(ctx) {
		fmt.Fprintln(out, c)
	}
	return nil
}

func parseID(fs *flag.FlagSet, args []string) (int, error) {
	id := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	return utils.ParseProductID(*id)
}

func showProduct(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	id, err := parseID(newFlagSet("product", out), args)
	if err != nil {
		return err
	}

	p, ok := app.Catalog.FetchProductByID(ctx, id)
	if !ok {
		return product.ErrProductNotFound
	}

	fmt.Fprintf(out, "%s\n%s\n\n%s\n", p.Name, utils.FormatRUB(p.Price), p.Description)
	fmt.Fprintf(out, "Категория: %s, рейтинг %.1f (%d отзывов)\n", p.Category, p.Rating, p.Reviews)
	for _, f := range p.Features {
		fmt.Fprintf(out, "  • %s\n", f)
	}
	for k, v := range p.Specifications {
		fmt.Fprintf(out, "  %s: %s\n", k, v)
	}
	return nil
}

func printCart(out io.Writer, s cart.State) {
	if s.IsEmpty() {
		fmt.Fprintln(out, "Корзина пуста")
		return
	}
	for _, item := range s.Items {
		fmt.Fprintf(out, "%4d  %-40s x%-3d %14s\n",
			item.Product.ID, utils.Truncate(item.Product.Name, 40), item.Quantity,
			utils.FormatRUB(item.Product.Price*int64(item.Quantity)))
	}
	fmt.Fprintf(out, "Товаров: %d, итого: %s\n", s.TotalItems, utils.FormatRUB(s.TotalPrice))
}

func showCart(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	printCart(out, app.Cart.Snapshot())
	return nil
}

func addToCart(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	fs := newFlagSet("add", out)
	qty := fs.Int("qty", 1, "quantity (at most 10)")
	id, err := parseID(fs, args)
	if err != nil {
		return err
	}

	s, err := app.AddToCart(ctx, id, *qty)
	if err != nil {
		return err
	}
	printCart(out, s)
	return nil
}

func removeFromCart(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	id, err := parseID(newFlagSet("remove", out), args)
	if err != nil {
		return err
	}
	printCart(out, app.Cart.RemoveItem(ctx, id))
	return nil
}

func updateQuantity(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	fs := newFlagSet("update", out)
	qty := fs.Int("qty", 1, "new quantity, 0 removes the line")
	id, err := parseID(fs, args)
	if err != nil {
		return err
	}
	printCart(out, app.Cart.UpdateQuantity(ctx, id, *qty))
	return nil
}

func clearCart(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	printCart(out, app.Cart.Clear(ctx))
	return nil
}

func credentials(name string, args []string, out io.Writer) (string, string, error) {
	fs := newFlagSet(name, out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	if errs := session.ValidateCredentials(*email, *password); len(errs) > 0 {
		return "", "", errs
	}
	return *email, *password, nil
}

func register(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	email, password, err := credentials("register", args, out)
	if err != nil {
		return err
	}
	if err := app.Session.Register(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintf(out, "Добро пожаловать, %s\n", email)
	return nil
}

func login(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	email, password, err := credentials("login", args, out)
	if err != nil {
		return err
	}
	if err := app.Session.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintf(out, "Вы вошли как %s\n", email)
	return nil
}

func logout(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	app.Session.Logout(ctx)
	fmt.Fprintln(out, "Вы вышли из аккаунта")
	return nil
}

func whoami(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	user, ok := app.Session.CurrentUser()
	if !ok {
		fmt.Fprintln(out, "Гость")
		return nil
	}
	fmt.Fprintln(out, user)
	return nil
}

func checkout(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	fs := newFlagSet("checkout", out)
	var form order.CheckoutForm
	fs.StringVar(&form.FullName, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "contact email")
	fs.StringVar(&form.Address, "address", "", "street address")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.State, "state", "", "region")
	fs.StringVar(&form.PostalCode, "postal", "", "postal code")
	fs.StringVar(&form.Country, "country", order.DefaultCountry, "country")
	cardNumber := fs.String("card", "", "card number; cash on delivery when empty")
	expiry := fs.String("exp", "", "card expiry MM/YY")
	cvc := fs.String("cvc", "", "card security code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		o   order.Order
		err error
	)
	if *cardNumber == "" {
		o, err = app.Checkout(ctx, form, payment.MethodCashOnDelivery)
	} else {
		card, perr := parseCard(*cardNumber, *expiry, *cvc)
		if perr != nil {
			return perr
		}
		o, err = app.CheckoutWithCard(ctx, form, card)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Заказ оформлен!")
	printOrder(out, o)
	return nil
}

// parseCard accepts expiry as MM/YY or MM/YYYY.
func parseCard(number, expiry, cvc string) (payment.CardDetails, error) {
	month, year, ok := strings.Cut(expiry, "/")
	if !ok {
		return payment.CardDetails{}, fmt.Errorf("%w: expiry must be MM/YY", payment.ErrInvalidCard)
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return payment.CardDetails{}, fmt.Errorf("%w: bad expiry month", payment.ErrInvalidCard)
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return payment.CardDetails{}, fmt.Errorf("%w: bad expiry year", payment.ErrInvalidCard)
	}
	if y < 100 {
		y += 2000
	}
	return payment.CardDetails{Number: number, ExpMonth: m, ExpYear: y, CVC: cvc}, nil
}

func printOrder(out io.Writer, o order.Order) {
	fmt.Fprintf(out, "%s  %s  %s  %s\n", o.ID, utils.FormatDate(o.CreatedAt), o.Status.Label(), utils.FormatRUB(o.Total))
	for _, item := range o.Items {
		fmt.Fprintf(out, "    %s x%d\n", utils.Truncate(item.Product.Name, 50), item.Quantity)
	}
	a := o.ShippingAddress
	fmt.Fprintf(out, "    %s, %s, %s, %s, %s, %s\n", a.FullName, a.Address, a.City, a.State, a.PostalCode, a.Country)
	fmt.Fprintf(out, "    Оплата: %s\n", o.PaymentMethod)
}

func listOrders(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	user, ok := app.Session.CurrentUser()
	if !ok {
		return errors.New("войдите, чтобы увидеть заказы")
	}

	orders := app.Orders.ListOrders(ctx, user)
	if len(orders) == 0 {
		fmt.Fprintln(out, "У вас пока нет заказов")
		return nil
	}
	for _, o := range orders {
		printOrder(out, o)
	}
	return nil
}

func lastOrder(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	o, ok := app.Orders.LastOrder(ctx)
	if !ok {
		fmt.Fprintln(out, "Заказ не найден")
		return nil
	}
	printOrder(out, o)
	return nil
}
