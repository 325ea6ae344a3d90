package textproc

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the stable content key for a raw text: the hex
// SHA-256 of its bytes. Byte-identical texts share one key, so two
// OCR runs over the same content address the same stored record.
func Fingerprint(rawText string) string {
	sum := sha256.Sum256([]byte(rawText))
	return hex.EncodeToString(sum[:])
}
