package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("barbearia-do-ze"))
	assert.True(t, IsSlug("b2"))
	assert.False(t, IsSlug("a"))
	assert.False(t, IsSlug("Barbearia"))
	assert.False(t, IsSlug("barbearia do ze"))
}

func TestIsEmailFormat(t *testing.T) {
	assert.True(t, IsEmailFormat("ana@example.com"))
	assert.False(t, IsEmailFormat("ana"))
	assert.False(t, IsEmailFormat("Ana <ana@example.com>"))
}

func TestParseClock(t *testing.T) {
	m, ok := ParseClock("09:30")
	assert.True(t, ok)
	assert.Equal(t, 570, m)

	_, ok = ParseClock("25:00")
	assert.False(t, ok)
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "example.com", EmailDomain("ana@Example.com"))
	assert.Equal(t, "", EmailDomain("ana@"))
	assert.Equal(t, "", EmailDomain("ana"))
	assert.False(t, IsEmailDomainValid("ana@"))
}
