package gameview

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"guess-master/internal/models"
)

// ParseGuess accepts only whole numbers from 1 to 100.
func ParseGuess(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", text)
	}
	if n < models.MinGuess || n > models.MaxGuess {
		return 0, fmt.Errorf("out of range: %d", n)
	}
	return n, nil
}

const secretKeyLen = 64

// LooksLikeSecretKey spots the usual encodings of a 64-byte ed25519 keypair:
// base58 (wallet export) and a JSON byte array (CLI keypair file).
func LooksLikeSecretKey(s string) bool {
	s = strings.TrimSpace(s)

	if b, err := base58.Decode(s); err == nil && len(b) == secretKeyLen {
		return true
	}

	if strings.HasPrefix(s, "[") {
		var raw []int
		if err := json.Unmarshal([]byte(s), &raw); err == nil && len(raw) == secretKeyLen {
			return true
		}
	}

	return false
}
