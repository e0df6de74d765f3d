package ports

// PasswordHasher produces a salted hash of a password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
