package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShortCode_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{4, 8, 16} {
		code, err := GenerateShortCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(shortCodeAlphabet, c),
				"code %q contains %q outside the alphabet", code, c)
		}
	}
}

func TestGenerateShortCode_InvalidLength(t *testing.T) {
	_, err := GenerateShortCode(0)
	assert.Error(t, err)

	_, err = GenerateShortCode(-1)
	assert.Error(t, err)
}

func TestGenerateShortCode_DistinctAcrossDraws(t *testing.T) {
	// 1000 draws from a 62^8 space; a repeat means the generator is broken,
	// not unlucky.
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		code, err := GenerateShortCode(8)
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %q after %d draws", code, i)
		seen[code] = true
	}
}

func TestGenerateShortCode_CoversAlphabet(t *testing.T) {
	// With 500 draws of 8 symbols every alphabet position should appear;
	// a missing symbol points at a biased mapping from bytes to symbols.
	counts := make(map[rune]int)
	for i := 0; i < 500; i++ {
		code, err := GenerateShortCode(8)
		require.NoError(t, err)
		for _, c := range code {
			counts[c]++
		}
	}
	assert.Len(t, counts, len(shortCodeAlphabet))
}
