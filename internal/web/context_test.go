package web

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValueRoundTrip(t *testing.T) {
	requestID := NewKey[string]("request_id")
	r := httptest.NewRequest("GET", "/", nil)
	r = AddValueToContext(r, requestID, "abc")

	v, ok := GetValueFromContext(r, requestID)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.Equal(t, "request_id", requestID.String())

	_, ok = GetValueFromContext(r, NewKey[string]("request_id"))
	assert.False(t, ok, "keys with the same name are distinct")

	_, ok = GetValueFromContext(r, NewKey[int]("other"))
	assert.False(t, ok)
}
