// Package passgen generates passwords uniformly at random from the fixed
// 62-character alphanumeric alphabet the catalogue's generate operation
// uses for new credential passphrases.
package passgen

import (
	"crypto/rand"
	"math/big"

	"github.com/byteptr/steel/internal/steelerr"
)

// Alphabet is the fixed character set generate() draws from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// MinLength is the smallest length generate() accepts.
const MinLength = 6

// Generate returns a string of length characters drawn uniformly from
// Alphabet. crypto/rand.Int performs its own rejection sampling internally,
// so the result carries no modular bias toward any character.
func Generate(length int) (string, error) {
	if length < MinLength {
		return "", steelerr.InvalidArgument("password length must be at least 6")
	}

	alphabetSize := big.NewInt(int64(len(Alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", steelerr.Crypto("generate password", err)
		}
		out[i] = Alphabet[n.Int64()]
	}
	return string(out), nil
}
