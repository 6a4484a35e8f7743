package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "title"})

	mapped := ToDomainError(original)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, "title", mapped.Details["field"])
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading suggestion: %w", NewNotFound("suggestion", map[string]any{"id": "s-1"}))

	mapped := ToDomainError(wrapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("user", nil)))
	assert.False(t, IsNotFound(NewValidationError("bad", nil)))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestInvalidStateCarriesCode(t *testing.T) {
	err := NewInvalidState("VOTE_NOT_OPEN", "voting has not started", map[string]any{"suggestionId": "s-1"})

	mapped := ToDomainError(err)
	assert.Equal(t, "VOTE_NOT_OPEN", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	require.ErrorIs(t, err, cause)
}
