package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Generate(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		code := Generate()

		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected symbol %q", r)
		}

		seen[code] = struct{}{}
	}

	// 1000 draws from 64^8 should never collide
	assert.Len(t, seen, 1000)
}
