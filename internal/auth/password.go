package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes an account credential. Cost comes from the
// auth config so tests can use bcrypt.MinCost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a plaintext credential against its stored hash.
// Verification tokens sign over the hash, so a password change also
// invalidates any outstanding activation or reset links.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
