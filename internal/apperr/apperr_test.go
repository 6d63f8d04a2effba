package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		category Category
		status   int
	}{
		{CategoryValidation, http.StatusBadRequest},
		{CategoryNotFound, http.StatusNotFound},
		{CategoryNoPlans, http.StatusNotFound},
		{CategoryComputation, http.StatusUnprocessableEntity},
		{CategoryInternal, http.StatusInternalServerError},
		{Category("something-new"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		err := New(KeyGenericInternal, tc.category, "boom")
		assert.Equal(t, tc.status, err.HTTPStatus(), "Category %s", tc.category)
	}
}

func TestAgeOutOfRangeCarriesBounds(t *testing.T) {
	err := NewAgeOutOfRange(17, 18, 65)

	assert.Equal(t, KeyAgeOutOfRange, err.Key)
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, 17, err.Extras["age"])
	assert.Equal(t, 18, err.Extras["min_age"])
	assert.Equal(t, 65, err.Extras["max_age"])
	assert.Contains(t, err.Error(), "[18, 65]")
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("file truncated")
	err := NewValidation(KeyInvalidProfile, "bad profile").Wrap(cause)

	assert.Contains(t, err.Error(), "bad profile")
	assert.Contains(t, err.Error(), "file truncated")
	assert.True(t, errors.Is(err, cause))
}

func TestAsThroughWrappedChain(t *testing.T) {
	inner := NewNotFound(KeyUnknownPlan, "plan x not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KeyUnknownPlan, appErr.Key)
	assert.True(t, IsCategory(wrapped, CategoryNotFound))
	assert.False(t, IsCategory(wrapped, CategoryValidation))
}

func TestAsPlainError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsCategory(errors.New("plain"), CategoryInternal))
}

func TestNoPlansAvailableExtras(t *testing.T) {
	withProduct := NewNoPlansAvailable("term-life")
	assert.Equal(t, "term-life", withProduct.Extras["product_id"])

	without := NewNoPlansAvailable("")
	assert.Nil(t, without.Extras)
}
