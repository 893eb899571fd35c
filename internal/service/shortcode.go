package service

import (
	"crypto/rand"
	"fmt"
)

// shortCodeAlphabet is the 62-symbol code alphabet. Codes are case
// sensitive; "Ab3" and "ab3" are different codes.
const shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiasedByte is the largest multiple of 62 below 256. Random bytes at
// or above it are discarded; taking them mod 62 would skew the first eight
// symbols of the alphabet and make codes partially predictable.
const maxUnbiasedByte = 248

// GenerateShortCode returns a fixed-length code drawn uniformly at random
// from the 62-symbol alphabet. crypto/rand is the only entropy source: codes
// must not be derivable from prior codes, timestamps, or counters.
func GenerateShortCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid short code length %d", length)
	}

	code := make([]byte, length)
	buf := make([]byte, length)

	for filled := 0; filled < length; {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= maxUnbiasedByte {
				continue
			}
			code[filled] = shortCodeAlphabet[int(b)%len(shortCodeAlphabet)]
			filled++
			if filled == length {
				break
			}
		}
	}

	return string(code), nil
}
