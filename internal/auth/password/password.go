package password

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the stored digests were created with.
const hashCost = 10

// Hash derives a one-way digest from a plaintext password.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches a previously hashed digest.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
