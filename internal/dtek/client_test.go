package dtek

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outage-bot/internal/fetch"
)

var testCreds = Credentials{
	CSRFToken: "csrf-token",
	Cookie:    "session=abc",
	City:      "Місто",
	Street:    "Вулиця",
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "csrf-token", r.Header.Get("X-CSRF-Token"))
		assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "getHomeNum", r.PostForm.Get("method"))
		assert.Equal(t, "city", r.PostForm.Get("data[0][name]"))
		assert.Equal(t, "Місто", r.PostForm.Get("data[0][value]"))
		assert.Equal(t, "street", r.PostForm.Get("data[1][name]"))
		assert.Equal(t, "Вулиця", r.PostForm.Get("data[1][value]"))
		assert.Equal(t, "updateFact", r.PostForm.Get("data[2][name]"))
		assert.Equal(t, "12:00 15.06.2025", r.PostForm.Get("data[2][value]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"fact": {"today": "1750032000", "data": {"1750032000": {"GPV1": {"1": "yes"}}}},
			"preset": {"sch_names": {"GPV1": "Група 1"}, "time_type": {"yes": "Є світло"}},
			"data": {"123": {"sub_type_reason": ["GPV1"]}}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testCreds)
	// 09:00 UTC = 12:00 Kyiv summer time.
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	resp, err := client.Fetch(context.Background(), now)
	require.NoError(t, err)

	today, ok := ExtractTodayUnix(&resp.Fact)
	require.True(t, ok)
	assert.Equal(t, int64(1750032000), today)
	assert.Equal(t, "Група 1", resp.Preset.SchNames["GPV1"])
	require.NotNil(t, resp.Data["123"])
	assert.Equal(t, []string{"GPV1"}, resp.Data["123"].SubTypeReason)
}

func TestClientFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testCreds)
	_, err := client.Fetch(context.Background(), time.Now())

	var httpErr *fetch.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
}

func TestClientFetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>login page</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testCreds)
	_, err := client.Fetch(context.Background(), time.Now())

	require.ErrorIs(t, err, ErrBadPayload)
}
