package board

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyPushServer completes the websocket handshake and drops the
// connection right away, so every attempt forces a reconnect.
func flakyPushServer(connects *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Sec-WebSocket-Key")
		sum := sha1.Sum([]byte(key + "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"))
		accept := base64.StdEncoding.EncodeToString(sum[:])

		hj, ok := w.(http.Hijacker)
		if !ok {
			return
		}
		conn, rw, err := hj.Hijack()
		if err != nil {
			return
		}
		defer conn.Close()

		rw.WriteString("HTTP/1.1 101 Switching Protocols\r\n" +
			"Upgrade: websocket\r\n" +
			"Connection: Upgrade\r\n" +
			"Sec-WebSocket-Accept: " + accept + "\r\n\r\n")
		rw.Flush()
		connects.Add(1)
	}))
}

func TestListenerReconnectsWithoutStrandingGoroutines(t *testing.T) {
	var connects atomic.Int32
	srv := flakyPushServer(&connects)
	defer srv.Close()

	listener := NewListener(NewReconciler(),
		"ws"+strings.TrimPrefix(srv.URL, "http"), nil, zap.NewNop())
	listener.backoff = 2 * time.Millisecond

	before := runtime.NumGoroutine()
	listener.Start(context.Background())

	require.Eventually(t, func() bool {
		return connects.Load() >= 5
	}, 5*time.Second, 5*time.Millisecond, "listener should keep reconnecting")

	listener.Stop()

	// Each connection's watchdog must exit with the connection, not
	// accumulate until shutdown.
	require.Eventually(t, func() bool {
		runtime.GC()
		return runtime.NumGoroutine() <= before+1
	}, 5*time.Second, 20*time.Millisecond, "goroutine count should settle back")
}

func TestNextBackoff(t *testing.T) {
	cases := []struct {
		name      string
		current   time.Duration
		connected time.Duration
		want      time.Duration
	}{
		{"doubles after a quick failure", time.Second, time.Second, 2 * time.Second},
		{"caps at thirty seconds", 20 * time.Second, time.Second, 30 * time.Second},
		{"stays at the cap", 30 * time.Second, time.Second, 30 * time.Second},
		{"resets after a steady connection", 16 * time.Second, time.Minute, time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, nextBackoff(tc.current, tc.connected, time.Second))
		})
	}
}
