package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Malformed addresses are rejected before any DNS lookup happens.
func TestIsEmailDomainValidRejectsMalformedAddresses(t *testing.T) {
	tests := []string{
		"",
		"no-at-sign",
		"@missing.local.part",
		"trailing@",
	}

	for _, email := range tests {
		assert.False(t, IsEmailDomainValid(email), email)
	}
}
