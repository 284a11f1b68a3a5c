package payment

// Method labels recorded on orders. The order never stores a token.
const (
	MethodCashOnDelivery = "Наличные при получении"
	MethodCard           = "Банковская карта"
)

type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}
