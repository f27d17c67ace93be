package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSubdomain(t *testing.T) {
	valid := []string{"acme", "k-box", "room101", "ab", strings.Repeat("a", 63)}
	for _, s := range valid {
		assert.True(t, IsValidSubdomain(s), s)
	}

	invalid := []string{"", "a", "www", "-acme", "acme-", "Acme", "a_cme", "a.cme",
		"acme ktv", strings.Repeat("a", 64)}
	for _, s := range invalid {
		assert.False(t, IsValidSubdomain(s), s)
	}
}

func TestTenantStatusHelpers(t *testing.T) {
	s := &TenantService{}
	for _, status := range []string{"active", "inactive", "suspended"} {
		assert.True(t, s.IsValidStatus(status), status)
	}
	assert.False(t, s.IsValidStatus("deleted"))

	assert.True(t, s.ValidateName("星光KTV"))
	assert.False(t, s.ValidateName(""))
	assert.False(t, s.ValidateName("x"))
}
