package utility

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserIDFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := GetUserIDFromContext(c)
	assert.Error(t, err)

	c.Set("user_id", int64(12))
	id, err := GetUserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	c.Set("user_id", int64(0))
	_, err = GetUserIDFromContext(c)
	assert.Error(t, err)

	c.Set("user_id", "12")
	_, err = GetUserIDFromContext(c)
	assert.Error(t, err)
}

func TestParseIntParam(t *testing.T) {
	assert.Equal(t, int64(5), ParseIntParam("5", 0))
	assert.Equal(t, int64(-3), ParseIntParam("-3", 0))
	assert.Equal(t, int64(7), ParseIntParam("", 7))
	assert.Equal(t, int64(7), ParseIntParam("abc", 7))
	assert.Equal(t, int64(7), ParseIntParam("4.2", 7))
}
