package ordernum

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFormat(t *testing.T) {
	now := time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		number := Generate(now)
		assert.Len(t, number, 14)
		assert.True(t, strings.HasPrefix(number, "VK20260105"), "unexpected prefix in %s", number)
		assert.True(t, IsValid(number), "generated number %s failed validation", number)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("VK202601050042"))
	assert.False(t, IsValid("VK2026010542"))
	assert.False(t, IsValid("XX202601050042"))
	assert.False(t, IsValid(""))
}
