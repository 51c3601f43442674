package services

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func sequentialDigest() [sha1.Size]byte {
	var d [sha1.Size]byte
	for i := range d {
		d[i] = byte(i)
	}
	return d
}

func TestDiffuse(t *testing.T) {
	kds := NewKeyDerivationService()

	tests := []struct {
		name     string
		modifier int
		expected string
	}{
		{
			name:     "modifier 2",
			modifier: 2,
			expected: "0808080808080808181818180c0c0c0c14141414",
		},
		{
			name:     "modifier 4",
			modifier: 4,
			expected: "10101010040404040c0c0c0c040404041c1c1c1c",
		},
		{
			name:     "modifier 0 cancels every word",
			modifier: 0,
			expected: "0000000000000000000000000000000000000000",
		},
		{
			name:     "modifier 7 wraps to 2",
			modifier: 7,
			expected: "0808080808080808181818180c0c0c0c14141414",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := kds.Diffuse(sequentialDigest(), tt.modifier)
			assert.Equal(t, tt.expected, hex.EncodeToString(out[:]))
		})
	}
}

func TestDiffuse_DoesNotModifyInput(t *testing.T) {
	kds := NewKeyDerivationService()

	in := sequentialDigest()
	_ = kds.Diffuse(in, 2)

	assert.Equal(t, sequentialDigest(), in)
}

func TestDiffuse_ReadsFromSnapshot(t *testing.T) {
	kds := NewKeyDerivationService()
	in := sequentialDigest()

	// With modifier 2, word 3 pairs with word 0. An in-place rewrite would have
	// already replaced word 0 with W0^W2 by the time word 3 is computed.
	out := kds.Diffuse(in, 2)
	for b := 0; b < 4; b++ {
		assert.Equal(t, in[12+b]^in[b], out[12+b])
		assert.NotEqual(t, in[12+b]^in[b]^in[8+b], out[12+b])
	}
}

func TestDeriveKey_KnownAnswers(t *testing.T) {
	kds := NewKeyDerivationService()

	tests := []struct {
		email    string
		flock    string
		expected string
	}{
		{email: "a@b.com", flock: "a@b.co", expected: "fdd4bb46f69e54ef23dd739c7004c1f1"},
		{email: "user@example.com", flock: "lge/flock", expected: "6ff9f50ab99add06a9428460da263a9c"},
		{email: "a@b.com", flock: "a@b.com", expected: "7244a83de2b6e689be11b700186181d8"},
		{email: "", flock: "", expected: "5f8dadffc2dfb66868cc25e15b2cebc3"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.email, tt.flock), func(t *testing.T) {
			key := kds.DeriveKey(tt.email, tt.flock)
			assert.Equal(t, mustDecodeHex(t, tt.expected), key[:])
		})
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	kds := NewKeyDerivationService()

	pairs := [][2]string{
		{"a@b.com", "a@b.co"},
		{"someone@example.org", "lge/flock"},
		{"ünïcode@example.de", "flöck"},
		{"", "flock-only"},
	}

	for _, p := range pairs {
		first := kds.DeriveKey(p[0], p[1])
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, kds.DeriveKey(p[0], p[1]))
		}
		assert.Equal(t, first, NewKeyDerivationService().DeriveKey(p[0], p[1]))
	}
}

func TestDeriveKey_FlockChangesKey(t *testing.T) {
	kds := NewKeyDerivationService()

	assert.NotEqual(t, kds.DeriveKey("a@b.com", "flock-1"), kds.DeriveKey("a@b.com", "flock-2"))
}

func TestDeriveKey_DistinctEmailsDistinctKeys(t *testing.T) {
	kds := NewKeyDerivationService()
	rng := rand.New(rand.NewSource(42))

	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789._-"
	emails := make(map[string]struct{})
	for len(emails) < 500 {
		local := make([]byte, 1+rng.Intn(24))
		for i := range local {
			local[i] = alphabet[rng.Intn(len(alphabet))]
		}
		emails[string(local)+"@example.com"] = struct{}{}
	}

	keys := make(map[[16]byte]string, len(emails))
	for email := range emails {
		key := kds.DeriveKey(email, "lge/flock")
		if other, ok := keys[key]; ok {
			t.Fatalf("emails %q and %q derived the same key", email, other)
		}
		keys[key] = email
	}

	assert.Len(t, keys, len(emails))
}
