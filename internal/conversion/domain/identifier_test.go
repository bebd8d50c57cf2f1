package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func token(n int) string {
	return strings.Repeat("a", n)
}

func TestValidClickID_LengthWindow(t *testing.T) {
	assert.False(t, ValidClickID(token(91)))
	assert.True(t, ValidClickID(token(92)))
	assert.True(t, ValidClickID(token(500)))
	assert.False(t, ValidClickID(token(501)))
}

func TestValidClickID_Charset(t *testing.T) {
	base := token(91)
	assert.True(t, ValidClickID(base+"A9-_."))
	assert.False(t, ValidClickID(base+"a b c"))
	assert.False(t, ValidClickID(base+"a%20b"))
	assert.False(t, ValidClickID(base+"日本語"))
}

func TestValidToken_PermissiveGate(t *testing.T) {
	assert.True(t, ValidToken("short-token_1.ok"))
	assert.False(t, ValidToken(""))
	assert.False(t, ValidToken("has space"))
}
