package facematch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/absensia/absensi-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.FaceAPIConfig{
		BaseURL:        server.URL,
		ConnectTimeout: time.Second,
		Timeout:        5 * time.Second,
	})
}

func TestVerifySuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/verify-face", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "frame.jpg", header.Filename)
		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(payload))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"user":"jane_doe","distance":0.31,"gap":0.12}`))
	})

	result, err := client.Verify(context.Background(), strings.NewReader("fake image bytes"), "frame.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "jane_doe", result.User)
	require.NotNil(t, result.Distance)
	assert.Equal(t, 0.31, *result.Distance)
	require.NotNil(t, result.Gap)
	assert.Equal(t, 0.12, *result.Gap)
}

func TestVerifyRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"no face detected"}`))
	})

	_, err := client.Verify(context.Background(), strings.NewReader("x"), "frame.jpg", "")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "no face detected", upstreamErr.Message)
	assert.Equal(t, http.StatusOK, upstreamErr.StatusCode)
}

func TestVerifyUpstreamFailureStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"model not loaded"}`))
	})

	_, err := client.Verify(context.Background(), strings.NewReader("x"), "frame.jpg", "")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.Equal(t, "model not loaded", upstreamErr.Message)
}

func TestVerifyMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := client.Verify(context.Background(), strings.NewReader("x"), "frame.jpg", "")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Contains(t, upstreamErr.Raw, "gateway error")
}

func TestVerifyUnreachableService(t *testing.T) {
	client := NewClient(config.FaceAPIConfig{
		BaseURL:        "http://127.0.0.1:1",
		ConnectTimeout: 200 * time.Millisecond,
		Timeout:        time.Second,
	})

	_, err := client.Verify(context.Background(), strings.NewReader("x"), "frame.jpg", "")
	require.Error(t, err)

	// Transport failures are plain errors, not upstream diagnostics.
	var upstreamErr *UpstreamError
	assert.NotErrorAs(t, err, &upstreamErr)
	assert.Contains(t, err.Error(), "unreachable")
}
