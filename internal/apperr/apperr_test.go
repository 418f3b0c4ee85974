package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("bad").Code)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("").Code)
	assert.Equal(t, http.StatusForbidden, Forbidden("").Code)
	assert.Equal(t, http.StatusNotFound, NotFound("").Code)
	assert.Equal(t, http.StatusConflict, Conflict("").Code)
	assert.Equal(t, http.StatusInternalServerError, Internal("").Code)
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "Unauthorized", Unauthorized("").Message)
	assert.Equal(t, "Not Found", NotFound("").Message)
	assert.Equal(t, "report not found", NotFound("report not found").Message)
}

func TestAsPassthrough(t *testing.T) {
	orig := Conflict("already reported")
	got := As(orig)
	assert.Same(t, orig, got)
}

func TestAsWrapped(t *testing.T) {
	orig := NotFound("gone")
	wrapped := fmt.Errorf("resolving: %w", orig)
	got := As(wrapped)
	assert.Same(t, orig, got)
}

func TestAsUnknownDefaultsToInternal(t *testing.T) {
	got := As(errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, got.Code)
	assert.Equal(t, "Internal server error", got.Message)
}
