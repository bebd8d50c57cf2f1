package cookie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRootDomain(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"localhost", "localhost"},
		{"127.0.0.1", "127.0.0.1"},
		{"192.168.10.20", "192.168.10.20"},
		{"example.com", "example.com"},
		{"www.example.com", "example.com"},
		{"shop.example.co.jp", "example.co.jp"},
		{"a.b.shop.example.ne.jp", "example.ne.jp"},
		{"deep.sub.example.org", "example.org"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveRootDomain(tc.host), "host %s", tc.host)
	}
}

func TestBareHost(t *testing.T) {
	assert.True(t, bareHost("localhost"))
	assert.True(t, bareHost("10.0.0.1"))
	assert.True(t, bareHost(""))
	assert.False(t, bareHost("example.co.jp"))
}
