package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the verdict cache interface. Values are serialized verification
// results; keys are derived from the claim, not the document, so the same
// fact checked from two documents shares one entry.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a versioned cache key from a claim's type and normalized value
func Key(claimType, value string) string {
	hash := sha256.Sum256([]byte(claimType + "\x00" + value))
	return "factgate:v1:" + hex.EncodeToString(hash[:])
}
