package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := InvalidInput("months must not be empty")
	wrapped := Wrap(base, "failed to generate dataset")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.True(t, IsInvalidInput(wrapped))
	assert.Equal(t, "failed to generate dataset: months must not be empty", wrapped.Error())
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("disk full"), "failed to write %s", "sales.xlsx")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(wrapped))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInputf("bad row %d", 3)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("note")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Unavailable("record store is not configured")))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(WithCode(CodeInvalidInput, fmt.Errorf("bad seed"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(WithCode("VALIDATION_ERROR", fmt.Errorf("legacy"))))
}
