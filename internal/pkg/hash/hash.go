package hash

// Hash hashes secrets and verifies plaintext against a stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
