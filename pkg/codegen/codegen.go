// Package codegen generates short codes for URL mappings.
package codegen

import "crypto/rand"

const (
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	CodeLength = 8
)

// Generate returns a fixed-length code drawn from a URL-safe alphabet.
// It does not check uniqueness; the urls table constraint does that,
// and the create flow retries with a fresh code on conflict.
func Generate() string {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read only fails if the OS entropy source is broken
		panic(err)
	}

	for i, b := range buf {
		// 64 symbols, so a byte maps onto the alphabet without bias
		buf[i] = alphabet[b&63]
	}

	return string(buf)
}
