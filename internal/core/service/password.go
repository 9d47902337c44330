package service

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// passwordAlphabet matches the character set clients are used to seeing on
// their credential sheets.
const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#"

const passwordLength = 10

// generatePassword returns a fresh 10-character client password.
func generatePassword() string {
	var b strings.Builder
	b.Grow(passwordLength)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := 0; i < passwordLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand is unavailable; fall back to a fixed index rather
			// than failing client creation.
			b.WriteByte(passwordAlphabet[i%len(passwordAlphabet)])
			continue
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String()
}

// PlaintextVerifier compares passwords byte-for-byte. Known weakness; kept
// behind ports.CredentialVerifier so a hashed scheme can replace it without
// touching callers.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, presented string) bool {
	return stored != "" && stored == presented
}
