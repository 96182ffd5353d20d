package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-signing-key")

	tok, err := Generate(42, "owner@acme.example", "tenant_acme_clinic_1700000000000", "pms")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "owner@acme.example", claims.Email)
	assert.Equal(t, "tenant_acme_clinic_1700000000000", claims.TenantDBName)
	assert.Equal(t, "pms", claims.ProductID)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-signing-key")

	tok, err := Generate(1, "owner@acme.example", "tenant_acme_clinic_1700000000000", "pms")
	require.NoError(t, err)

	_, err = Validate(tok + "x")
	assert.Error(t, err)

	_, err = Validate("not.a.token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "key-one")
	tok, err := Generate(1, "owner@acme.example", "tenant_acme_clinic_1700000000000", "pms")
	require.NoError(t, err)

	t.Setenv("JWT_SIGNING_KEY", "key-two")
	_, err = Validate(tok)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "test-signing-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "-1")

	tok, err := Generate(1, "owner@acme.example", "tenant_acme_clinic_1700000000000", "pms")
	require.NoError(t, err)

	_, err = Validate(tok)
	assert.Error(t, err)
}
