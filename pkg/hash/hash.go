package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Short returns the first n hex characters of SHA256(input), or the full
// hash when n exceeds its length. Used to correlate log lines without
// recording the raw value.
func Short(input string, n int) string {
	full := SHA256Hex(input)
	if n > len(full) || n < 0 {
		return full
	}
	return full[:n]
}
