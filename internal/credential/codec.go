// Package credential implements the password digest scheme of the stored
// document. The historical scheme is a non-cryptographic rolling hash; digests
// produced by it are already persisted in user documents, so it must keep
// verifying bit-for-bit. An opt-in bcrypt scheme upgrades digests on the next
// successful login instead of breaking existing ones.
package credential

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

// Codec turns a plaintext secret into a stored digest and checks a plaintext
// against a stored digest.
type Codec interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	// NeedsRehash reports whether a digest should be re-generated with the
	// codec's preferred scheme after a successful verification.
	NeedsRehash(digest string) bool
}

const (
	SchemeLegacy = "legacy"
	SchemeBcrypt = "bcrypt"
)

// New returns the codec for the configured scheme. Unknown schemes fall back
// to legacy, which is always safe with existing data.
func New(scheme string) Codec {
	if scheme == SchemeBcrypt {
		return bcryptCodec{}
	}
	return legacyCodec{}
}

// ── Legacy rolling hash ───────────────────────────────────────────────────────

type legacyCodec struct{}

// LegacyDigest computes the historical digest: for every UTF-16 code unit,
// h = (h<<5) - h + unit on a wrapping 32-bit signed integer, starting at 0,
// rendered as a decimal string. Collision-prone and reversible by brute force;
// kept only for compatibility with previously stored digests.
func LegacyDigest(plaintext string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(plaintext)) {
		h = (h<<5 - h) + int32(unit)
	}
	return strconv.FormatInt(int64(h), 10)
}

func (legacyCodec) Hash(plaintext string) (string, error) {
	return LegacyDigest(plaintext), nil
}

func (legacyCodec) Verify(plaintext, digest string) bool {
	return LegacyDigest(plaintext) == digest
}

func (legacyCodec) NeedsRehash(string) bool { return false }

// ── Bcrypt with legacy fallback ───────────────────────────────────────────────

type bcryptCodec struct{}

func isBcryptDigest(digest string) bool {
	return strings.HasPrefix(digest, "$2")
}

func (bcryptCodec) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify accepts both digest generations: stored legacy digests keep working
// until NeedsRehash drives their migration.
func (bcryptCodec) Verify(plaintext, digest string) bool {
	if isBcryptDigest(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
	}
	return LegacyDigest(plaintext) == digest
}

func (bcryptCodec) NeedsRehash(digest string) bool {
	return !isBcryptDigest(digest)
}
