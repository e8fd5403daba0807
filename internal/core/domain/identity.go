package domain

// Identity is the account allowed to log in. PasswordHash is bcrypt.
type Identity struct {
	Username     string
	PasswordHash string
}
