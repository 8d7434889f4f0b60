package bereal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login/send-code", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"data":{"otpSession":"otp-123"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	otpSession, err := c.SendCode(context.Background(), "+17781234567")
	require.NoError(t, err)
	assert.Equal(t, "otp-123", otpSession)
}

func TestVerifyCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login/verify", r.URL.Path)
		w.Write([]byte(`{"data":{"token":"bearer-xyz"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	token, err := c.VerifyCode(context.Background(), "otp-123", "999999")
	require.NoError(t, err)
	assert.Equal(t, "bearer-xyz", token)
}

func TestSendCodeProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"maintenance"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.SendCode(context.Background(), "+17781234567")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSendCodeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second)
	_, err := c.SendCode(context.Background(), "+17781234567")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestVerifyCodeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad code"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.VerifyCode(context.Background(), "otp-123", "000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad code")
	assert.NotErrorIs(t, err, ErrUnavailable, "a rejected code is the caller's problem")
}

func TestMemories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/friends/memories", r.URL.Path)
		require.Equal(t, "Bearer bearer-xyz", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[
			{"memoryDay":"2022-03-02","primary":{"url":"https://cdn/p2.jpg"},"secondary":{"url":"https://cdn/s2.jpg"}},
			{"memoryDay":"2022-03-01","primary":{"url":"https://cdn/p1.jpg"},"secondary":{"url":"https://cdn/s1.jpg"}},
			{"memoryDay":"2022-03-03","primary":{"url":"https://cdn/p3.jpg"},"secondary":{"url":""}},
			{"memoryDay":"2023-01-01","primary":{"url":"https://cdn/p4.jpg"},"secondary":{"url":"https://cdn/s4.jpg"}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC)

	memories, err := c.Memories(context.Background(), "bearer-xyz", start, end)
	require.NoError(t, err)

	// The half-pair day and the out-of-range day are dropped; the rest come
	// back in ascending date order.
	require.Len(t, memories, 2)
	assert.Equal(t, "https://cdn/p1.jpg", memories[0].PrimaryURL)
	assert.Equal(t, "https://cdn/p2.jpg", memories[1].PrimaryURL)
	assert.True(t, memories[0].Date.Before(memories[1].Date))
}

func TestMemoriesExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Memories(context.Background(), "stale", time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("imagebytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	path := filepath.Join(t.TempDir(), "primary.jpg")
	require.NoError(t, c.Download(context.Background(), srv.URL+"/img.jpg", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("imagebytes"), data)
}

func TestDownloadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	err := c.Download(context.Background(), srv.URL+"/img.jpg", filepath.Join(t.TempDir(), "x.jpg"))
	assert.Error(t, err)
}
