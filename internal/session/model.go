package session

// UserRecord is a registered identity. Password holds whatever the
// configured PasswordHasher produced; with the default hasher that is the
// password itself.
type UserRecord struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
