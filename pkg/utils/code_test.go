package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParticipantCode_Format(t *testing.T) {
	format := regexp.MustCompile(`^ARC-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

	for i := 0; i < 100; i++ {
		code := GenerateParticipantCode()
		require.Regexp(t, format, code)
	}
}

func TestGenerateParticipantCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[GenerateParticipantCode()] = true
	}
	// при 36^8 вариантах коллизий на тысяче кодов быть не должно
	assert.Equal(t, 1000, len(seen))
}
