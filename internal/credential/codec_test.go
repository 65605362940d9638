package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyDigest_KnownVectors(t *testing.T) {
	// Values produced by the original JavaScript implementation
	// (hash = ((hash<<5) - hash) + charCode, wrapped to int32).
	vectors := map[string]string{
		"":         "0",
		"a":        "97",
		"hola":     "3208380",
		"admin123": "-969161597",
		"secret1":  "1970177921",
		"password": "1216985755",
		"Abc123xy": "1275650481",
	}
	for plaintext, want := range vectors {
		assert.Equal(t, want, LegacyDigest(plaintext), "plaintext %q", plaintext)
	}
}

func TestLegacyCodec_Deterministic(t *testing.T) {
	c := New(SchemeLegacy)
	for _, s := range []string{"admin123", "", "ñandú", "a longer passphrase with spaces"} {
		h1, err := c.Hash(s)
		assert.NoError(t, err)
		h2, err := c.Hash(s)
		assert.NoError(t, err)
		assert.Equal(t, h1, h2)
		assert.True(t, c.Verify(s, h1))
		assert.False(t, c.NeedsRehash(h1))
	}
}

func TestLegacyCodec_RejectsWrongPassword(t *testing.T) {
	c := New(SchemeLegacy)
	h, _ := c.Hash("secret1")
	assert.False(t, c.Verify("secret2", h))
}

func TestBcryptCodec_UpgradePath(t *testing.T) {
	c := New(SchemeBcrypt)

	// Legacy digests still verify and are flagged for rehash.
	legacy := LegacyDigest("admin123")
	assert.True(t, c.Verify("admin123", legacy))
	assert.True(t, c.NeedsRehash(legacy))

	// New digests are bcrypt and stable.
	h, err := c.Hash("admin123")
	assert.NoError(t, err)
	assert.True(t, c.Verify("admin123", h))
	assert.False(t, c.Verify("admin124", h))
	assert.False(t, c.NeedsRehash(h))
}

func TestNew_UnknownSchemeFallsBackToLegacy(t *testing.T) {
	c := New("argon2")
	h, err := c.Hash("x")
	assert.NoError(t, err)
	assert.Equal(t, LegacyDigest("x"), h)
}
