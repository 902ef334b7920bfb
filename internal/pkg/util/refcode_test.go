package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRefCode(t *testing.T) {
	code := GenerateRefCode()

	assert.Len(t, code, 20)
	for _, c := range code {
		assert.True(t, (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'), "unexpected char %c", c)
	}
}

func TestGenerateRefCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[GenerateRefCode()] = true
	}
	assert.Greater(t, len(seen), 99)
}
