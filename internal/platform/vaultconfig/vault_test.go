package vaultconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOr_PrefersPresentStringValue(t *testing.T) {
	secrets := map[string]interface{}{"HOST": "vault-host"}
	assert.Equal(t, "vault-host", StringOr(secrets, "HOST", "fallback"))
}

func TestStringOr_FallsBackOnMissingKey(t *testing.T) {
	secrets := map[string]interface{}{}
	assert.Equal(t, "fallback", StringOr(secrets, "HOST", "fallback"))
}

func TestStringOr_FallsBackOnWrongType(t *testing.T) {
	secrets := map[string]interface{}{"PORT": 5432}
	assert.Equal(t, "fallback", StringOr(secrets, "PORT", "fallback"))
}

func TestStringOr_FallsBackOnEmptyString(t *testing.T) {
	secrets := map[string]interface{}{"HOST": ""}
	assert.Equal(t, "fallback", StringOr(secrets, "HOST", "fallback"))
}
