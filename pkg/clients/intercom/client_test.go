package intercom

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"intercom/pkg/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path   string
	auth   string
	body   string
	method string
}

func recordingServer(t *testing.T, status int, reply string, got *recorded) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*got = recorded{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: string(body), method: r.Method}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRingBearerMode(t *testing.T) {
	var got recorded
	srv := recordingServer(t, http.StatusOK, "", &got)

	err := NewClient(srv.URL+"/", "s3cret", middleware.AuthModeBearer).Ring(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/notify", got.path)
	assert.Equal(t, "Bearer s3cret", got.auth)
	assert.Empty(t, got.body)
}

func TestPingBodyMode(t *testing.T) {
	var got recorded
	srv := recordingServer(t, http.StatusOK, "", &got)

	err := NewClient(srv.URL, "s3cret", middleware.AuthModeBody).Ping(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/ping", got.path)
	assert.Empty(t, got.auth)
	assert.Equal(t, "s3cret", got.body)
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	var got recorded
	srv := recordingServer(t, http.StatusUnauthorized, `{"error":"Invalid token."}`, &got)

	err := NewClient(srv.URL, "nope", middleware.AuthModeBearer).Ring(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "Invalid token.", statusErr.Message)
	assert.Equal(t, "intercom returned status: 401: Invalid token.", err.Error())
}

func TestBadGatewayWithoutBody(t *testing.T) {
	var got recorded
	srv := recordingServer(t, http.StatusBadGateway, "", &got)

	err := NewClient(srv.URL, "s3cret", middleware.AuthModeBearer).Ring(context.Background())
	assert.EqualError(t, err, "intercom returned status: 502")
}
