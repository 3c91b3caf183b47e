package domainerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "agrisurvey/pkg/domain-errors"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := dErrors.New(dErrors.CodeValidation, "superficie cannot be negative")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.False(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("matches wrapped error", func(t *testing.T) {
		inner := dErrors.New(dErrors.CodeNotFound, "producteur not found")
		err := fmt.Errorf("load producteur: %w", inner)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("rejects plain errors", func(t *testing.T) {
		assert.False(t, dErrors.HasCode(errors.New("boom"), dErrors.CodeValidation))
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := dErrors.Wrap(cause, dErrors.CodeInternal, "save questionnaire")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "save questionnaire")
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, dErrors.IsValidation(dErrors.New(dErrors.CodeValidation, "rating out of range")))
	assert.False(t, dErrors.IsValidation(dErrors.New(dErrors.CodeInternal, "db down")))
	assert.False(t, dErrors.IsValidation(nil))
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("opaque")))
}
