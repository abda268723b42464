package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestErrorIs_MatchesByCode(t *testing.T) {
	err := Conflict("vote update contended")

	assert.True(t, Is(err, ErrConflict))
	assert.False(t, Is(err, ErrNotFound))
}

func TestErrorIs_ThroughWrapping(t *testing.T) {
	cause := fmt.Errorf("database is locked")
	err := Wrap(cause, CodeConflict, "could not apply vote")

	assert.True(t, Is(err, ErrConflict))
	assert.ErrorContains(t, err, "database is locked")
	assert.Equal(t, cause, Unwrap(err))
}

func TestWithDetails(t *testing.T) {
	err := Validation("validation failed").WithDetails(map[string]string{"value": "must be one of: -1 1"})

	assert.Equal(t, CodeValidation, err.Code)
	assert.NotNil(t, err.Details)
	assert.True(t, Is(err, ErrValidation))
}
