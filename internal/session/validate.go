package session

import "shopelite/internal/utils"

const MinPasswordLength = 6

// ValidateCredentials applies the register/login form rules. The store
// itself accepts any strings; callers run this first.
func ValidateCredentials(email, password string) utils.ValidationErrors {
	errs := utils.ValidationErrors{}

	if utils.IsBlank(email) {
		errs["email"] = "Email обязателен"
	} else if !utils.IsEmail(email) {
		errs["email"] = "Введите корректный email"
	}

	if len([]rune(password)) < MinPasswordLength {
		errs["password"] = "Пароль должен содержать минимум 6 символов"
	}

	return errs
}
