package session_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

var base58Alphabet = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]+$`)

func TestRandomGenerator(t *testing.T) {
	t.Parallel()

	gen := session.RandomGenerator{}
	for _, size := range []int{1, 16, session.MinTokenSize, 512} {
		assert.Len(t, gen.Generate(size), size)
	}

	assert.False(t, bytes.Equal(gen.Generate(32), gen.Generate(32)))
}

func TestBase58Encoder(t *testing.T) {
	t.Parallel()

	enc := session.Base58Encoder{}
	assert.Equal(t, "StV1DL6CwTryKyV", enc.Encode([]byte("hello world")))
	assert.Equal(t, "11", enc.Encode([]byte{0, 0}))

	token := session.RandomGenerator{}.Generate(session.MinTokenSize)
	id := enc.Encode(token)
	assert.Equal(t, id, enc.Encode(token))
	assert.Regexp(t, base58Alphabet, id)
}

func TestHashEncoder(t *testing.T) {
	t.Parallel()

	enc := session.HashEncoder{}
	small := enc.Encode([]byte("a"))
	large := enc.Encode(bytes.Repeat([]byte("a"), 1024))

	assert.Regexp(t, base58Alphabet, small)
	assert.Equal(t, small, enc.Encode([]byte("a")))
	assert.NotEqual(t, small, large)
	assert.LessOrEqual(t, len(large), 44)
	assert.NotEqual(t, session.Base58Encoder{}.Encode([]byte("a")), small)
}
