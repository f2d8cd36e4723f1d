package clientstate_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/SscSPs/vehicle_export_storefront/internal/clientstate"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Items []string `json:"items"`
}

func TestDecode_VersionMismatchIsDiscarded(t *testing.T) {
	blob, err := clientstate.Encode(sample{Items: []string{"a"}}, 1)
	require.NoError(t, err)

	got, ok := clientstate.Decode[sample](blob, 1)
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, got.Items)

	_, ok = clientstate.Decode[sample](blob, 2)
	assert.False(t, ok)

	_, ok = clientstate.Decode[sample]([]byte(`{"items":["legacy shape"]}`), 1)
	assert.False(t, ok, "unversioned blobs are not migrated")

	_, ok = clientstate.Decode[sample]([]byte(`not json`), 1)
	assert.False(t, ok)
}

func TestFileStorage_RoundTrip(t *testing.T) {
	storage := clientstate.NewFileStorage(filepath.Join(t.TempDir(), "prefs", "state.json"))

	_, ok := clientstate.Restore[sample](storage, 1)
	assert.False(t, ok, "missing file means no state")

	require.NoError(t, clientstate.Persist(storage, sample{Items: []string{"x", "y"}}, 1))

	got, ok := clientstate.Restore[sample](storage, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, got.Items)
}

func TestCookieStorage_SaveSetsCookieAndLoadSeesIt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	storage := clientstate.NewCookieStorage(c, "v_favorites", false)
	require.NoError(t, clientstate.Persist(storage, sample{Items: []string{"v1"}}, 0))

	got, ok := clientstate.Restore[sample](storage, 0)
	require.True(t, ok)
	assert.Equal(t, []string{"v1"}, got.Items)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "v_favorites", cookies[0].Name)
	raw, err := url.QueryUnescape(cookies[0].Value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"items":["v1"]},"version":0}`, raw)
}

func TestCookieStorage_LoadsFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "v_favorites", Value: url.QueryEscape(`{"state":{"items":["v9"]},"version":0}`)})

	got, ok := clientstate.Restore[sample](clientstate.NewCookieStorage(c, "v_favorites", false), 0)

	require.True(t, ok)
	assert.Equal(t, []string{"v9"}, got.Items)
}
