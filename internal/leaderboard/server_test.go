package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/line98/internal/core"
)

func newTestServer(t *testing.T, size int) (*httptest.Server, *Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(NewKV(core.NewMemoryStore(), size), size, log.New(io.Discard))
	go srv.Run(ctx)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts, srv
}

func TestServerFetchEmpty(t *testing.T) {
	ts, _ := newTestServer(t, 5)

	resp, err := http.Get(ts.URL + PathTop)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(body))
}

func TestServerBadRequests(t *testing.T) {
	ts, _ := newTestServer(t, 5)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"bad limit", http.MethodGet, PathTop + "?limit=abc", ""},
		{"zero limit", http.MethodGet, PathTop + "?limit=0", ""},
		{"malformed body", http.MethodPost, PathTop, "{"},
		{"unknown field", http.MethodPost, PathTop, `{"name":"a","score":1,"extra":true}`},
		{"empty name", http.MethodPost, PathTop, `{"name":"","score":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var eb errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&eb))
			assert.NotEmpty(t, eb.Error)
		})
	}
}

func TestServerSubmitStampsMissingTimestamp(t *testing.T) {
	ts, _ := newTestServer(t, 5)

	before := time.Now().UnixMilli()
	resp, err := http.Post(ts.URL+PathTop, "application/json", bytes.NewBufferString(`{"name":"kim","score":42}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "kim", got[0].Name)
	assert.GreaterOrEqual(t, got[0].Timestamp, before)
}

func TestRemoteRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t, 3)
	remote := NewRemote(ts.URL+"/", time.Second)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range []int{15, 60, 35, 5} {
		_, err := remote.Submit(ctx, NewEntry("r"+string(rune('a'+i)), s, base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	top, err := remote.FetchTop(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"rb", "rc", "ra"}, names(top))

	top, err = remote.FetchTop(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"rb", "rc"}, names(top))
}

func TestRemoteErrors(t *testing.T) {
	ts, _ := newTestServer(t, 5)
	remote := NewRemote(ts.URL, time.Second)

	// Rejected locally before any request is made.
	_, err := remote.Submit(context.Background(), NewEntry("", 1, time.Now()))
	assert.ErrorIs(t, err, ErrInvalidName)

	down := NewRemote("http://127.0.0.1:1", 200*time.Millisecond)
	_, err = down.Submit(context.Background(), NewEntry("ok", 1, time.Now()))
	assert.ErrorIs(t, err, ErrSubmit)

	_, err = down.FetchTop(context.Background(), 5)
	assert.Error(t, err)
}

func TestRemoteMapsServerRejection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "name taken")
	}))
	defer ts.Close()

	_, err := NewRemote(ts.URL, time.Second).Submit(context.Background(), NewEntry("dup", 1, time.Now()))
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Contains(t, err.Error(), "name taken")
}

func TestServerPushesUpdates(t *testing.T) {
	ts, _ := newTestServer(t, 5)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + PathSubscribe
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() []Entry {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var env Envelope
		require.NoError(t, conn.ReadJSON(&env))
		require.Equal(t, EventLeaderboard, env.Type)
		var entries []Entry
		require.NoError(t, json.Unmarshal(env.Payload, &entries))
		return entries
	}

	assert.Empty(t, read())

	_, err = NewRemote(ts.URL, time.Second).Submit(context.Background(), NewEntry("lea", 77, time.Now()))
	require.NoError(t, err)

	got := read()
	require.Len(t, got, 1)
	assert.Equal(t, "lea", got[0].Name)
	assert.Equal(t, 77, got[0].Score)
}

func TestRemoteWatch(t *testing.T) {
	ts, _ := newTestServer(t, 5)
	remote := NewRemote(ts.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan []Entry, 4)
	done := make(chan error, 1)
	go func() {
		done <- remote.Watch(ctx, func(e []Entry) { updates <- e })
	}()

	select {
	case first := <-updates:
		assert.Empty(t, first)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial update")
	}

	_, err := remote.Submit(context.Background(), NewEntry("wes", 9, time.Now()))
	require.NoError(t, err)

	select {
	case next := <-updates:
		assert.Equal(t, []string{"wes"}, names(next))
	case <-time.After(2 * time.Second):
		t.Fatal("no pushed update")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
