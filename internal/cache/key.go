package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenerateKey derives a stable file-safe key from its parts.
// Parts are joined with a NUL separator so ("ab","c") and ("a","bc") differ.
func GenerateKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
