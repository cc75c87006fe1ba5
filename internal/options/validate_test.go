package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	names := []string{"WithFilePath", "WithReader", "WithBytes"}

	t.Run("exactly one", func(t *testing.T) {
		assert.NoError(t, ValidateSingleInputSource(names, false, true, false))
	})

	t.Run("none", func(t *testing.T) {
		err := ValidateSingleInputSource(names, false, false, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		assert.Contains(t, err.Error(), "use WithFilePath, WithReader, or WithBytes")
	})

	t.Run("several", func(t *testing.T) {
		err := ValidateSingleInputSource(names, true, true, false)
		var cfgErr *oaserrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, 2, cfgErr.Value)
	})
}

func TestJoinOr(t *testing.T) {
	assert.Equal(t, "an input option", joinOr(nil))
	assert.Equal(t, "a", joinOr([]string{"a"}))
	assert.Equal(t, "a, or b", joinOr([]string{"a", "b"}))
	assert.Equal(t, "a, b, or c", joinOr([]string{"a", "b", "c"}))
}
