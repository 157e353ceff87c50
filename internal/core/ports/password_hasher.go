package ports

// PasswordHasher is a one-way hashing primitive for member passwords.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, hash string) bool
}
