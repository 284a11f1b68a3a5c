package order

import "shopelite/internal/utils"

// ValidateCheckout applies the checkout form rules. The order builder does
// not validate; callers reject the whole submission when this is non-empty.
func ValidateCheckout(f CheckoutForm) utils.ValidationErrors {
	errs := utils.ValidationErrors{}

	if utils.IsBlank(f.FullName) {
		errs["fullName"] = "ФИО обязательно"
	}

	if utils.IsBlank(f.Email) {
		errs["email"] = "Email обязателен"
	} else if !utils.IsEmail(f.Email) {
		errs["email"] = "Email некорректен"
	}

	if utils.IsBlank(f.Address) {
		errs["address"] = "Адрес обязателен"
	}
	if utils.IsBlank(f.City) {
		errs["city"] = "Город обязателен"
	}
	if utils.IsBlank(f.State) {
		errs["state"] = "Регион обязателен"
	}
	if utils.IsBlank(f.PostalCode) {
		errs["postalCode"] = "Почтовый индекс обязателен"
	}

	return errs
}
