package judgeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func testLogger() loggerv2.Logger {
	return loggerv2.NewZapContextLogger(zap.NewNop())
}

func newTestClient(t *testing.T, handler http.Handler, retryReadTimes int) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, time.Second, retryReadTimes, testLogger()), srv
}

func TestLoginDecodesResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","id":42,"username":"alice"}`))
	})
	client, _ := newTestClient(t, mux, 0)

	result, err := client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.Token)
	assert.Equal(t, uint64(42), result.ID)
	assert.Equal(t, "alice", result.Username)
}

func TestNon2xxBecomesFault(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/profile/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token.","code":"token_not_valid"}`))
	})
	client, _ := newTestClient(t, mux, 0)

	_, err := client.GetProfile(context.Background(), "bad-token")
	require.Error(t, err)

	f, ok := AsFault(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, f.Status)
	assert.Equal(t, "Invalid token.", f.Reason)
	assert.Equal(t, "token_not_valid", f.ErrorCode)
	assert.True(t, f.IsUnauthorized())
	assert.False(t, f.Transient())
}

func TestFaultWithoutBodyFallsBackToStatusText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contests/7/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	client, _ := newTestClient(t, mux, 0)

	_, err := client.GetContest(context.Background(), "tok", 7)
	f, ok := AsFault(err)
	require.True(t, ok)
	assert.True(t, f.IsNotFound())
	assert.Equal(t, http.StatusText(http.StatusNotFound), f.Reason)
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/contests/", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"id":1,"name":"warmup"}]`))
	})
	client, _ := newTestClient(t, mux, 2)

	contests, err := client.GetContestList(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, contests, 1)
	assert.Equal(t, "warmup", contests[0].Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts/profile/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	client, _ := newTestClient(t, mux, 3)

	_, err := client.GetProfile(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestBearerTokenForwarded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contests/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})
	client, _ := newTestClient(t, mux, 0)

	_, err := client.GetContestList(context.Background(), "tok-9")
	require.NoError(t, err)
}
