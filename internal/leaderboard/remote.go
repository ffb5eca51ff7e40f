package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Remote is a Service that talks to a leaderboard Server over HTTP.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a client for the server at baseURL
// (e.g. "http://scores.example:8098").
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchTop implements Service.
func (r *Remote) FetchTop(ctx context.Context, n int) ([]Entry, error) {
	u := r.baseURL + PathTop
	if n > 0 {
		u += "?limit=" + strconv.Itoa(n)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: fetch: %w", err)
	}

	entries, err := r.do(req)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: fetch: %w", err)
	}
	return entries, nil
}

// Submit implements Service. A rejected name maps to ErrInvalidName;
// every other failure wraps ErrSubmit.
func (r *Remote) Submit(ctx context.Context, e Entry) ([]Entry, error) {
	e, err := Validate(e)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+PathTop, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	req.Header.Set("Content-Type", "application/json")

	entries, err := r.do(req)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", ErrInvalidName, se.msg)
		}
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return entries, nil
}

type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.code, e.msg)
}

func (r *Remote) do(req *http.Request) ([]Entry, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var eb errorBody
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if json.Unmarshal(data, &eb) != nil || eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
		return nil, &statusError{code: resp.StatusCode, msg: eb.Error}
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return entries, nil
}

// Watch subscribes to live updates and calls fn with every list pushed by
// the server, starting with the current one. It returns when ctx is
// cancelled or the connection drops.
func (r *Remote) Watch(ctx context.Context, fn func([]Entry)) error {
	u, err := url.Parse(r.baseURL + PathSubscribe)
	if err != nil {
		return fmt.Errorf("leaderboard: watch: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("leaderboard: watch: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("leaderboard: watch: %w", err)
		}

		var env Envelope
		if json.Unmarshal(data, &env) != nil || env.Type != EventLeaderboard {
			continue
		}
		var entries []Entry
		if json.Unmarshal(env.Payload, &entries) != nil {
			continue
		}
		fn(entries)
	}
}

var _ Service = (*Remote)(nil)
