// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

func TestGet_Success(t *testing.T) {
	var calls int32
	var gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("payload"))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), ts.URL, types.HTTPConfig{UserAgent: "test/0.1"}, "application/zip")
	require.NoError(t, err)

	assert.Equal(t, "payload", string(body))
	assert.Equal(t, "test/0.1", gotUA)
	assert.Equal(t, "application/zip", gotAccept)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_ServerErrorIsNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, types.HTTPConfig{}, "")
	require.Error(t, err)

	assert.ErrorIs(t, err, types.ErrNetwork)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Contains(t, err.Error(), ts.URL)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_TooManyRequestsIsNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, types.HTTPConfig{}, "")
	assert.ErrorIs(t, err, types.ErrNetwork)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := Get(context.Background(), http.DefaultClient, url, types.HTTPConfig{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNetwork)
	assert.Contains(t, err.Error(), url)
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, types.HTTPConfig{}, "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, types.ErrNetwork)
}
