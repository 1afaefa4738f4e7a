package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotContains(t, string(hash), "pw123456") // one-way, never reversible

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ComparePassword("pw123456", hash))
		assert.NoError(t, ComparePassword([]byte("pw123456"), hash))
	})

	t.Run("incorrect password", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, ComparePassword("pw1234567", hash))
		assert.Error(t, ComparePassword("", hash))
	})

	t.Run("distinct salts", func(t *testing.T) {
		t.Parallel()
		other, err := HashPassword("pw123456")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}
