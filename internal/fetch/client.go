package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hugo/presencebot/internal/models"
)

// DefaultTimeout bounds every status-API call. A timeout is reported the
// same way as a non-2xx response: as a fetch failure for that person.
const DefaultTimeout = 10 * time.Second

// Client talks to the remote status API. One instance is shared across
// persons; per-person base overrides go through WithBase.
type Client struct {
	http *http.Client
	base string
	log  *zap.Logger
}

func New(base string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		base: base,
		log:  log,
	}
}

// WithBase returns a client hitting a different API base but sharing the
// underlying HTTP client.
func (c *Client) WithBase(base string) *Client {
	if base == "" || base == c.base {
		return c
	}
	return &Client{http: c.http, base: base, log: c.log}
}

// apiEvent is the wire shape of one snapshot. Access time travels as unix
// seconds.
type apiEvent struct {
	Machine     string `json:"machine"`
	WindowTitle string `json:"window_title"`
	App         string `json:"app"`
	AccessTime  int64  `json:"access_time"`
}

func (e *apiEvent) toModel() models.ActivityEvent {
	return models.ActivityEvent{
		Machine:     e.Machine,
		WindowTitle: e.WindowTitle,
		App:         e.App,
		AccessTime:  time.Unix(e.AccessTime, 0),
	}
}

// ListTrackedNames returns every name the remote side tracks.
func (c *Client) ListTrackedNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "/api/users", nil, &names); err != nil {
		return nil, errors.Wrap(err, "failed to fetch name list")
	}
	return names, nil
}

// FetchRecentEvents returns up to limit most recent snapshots for one
// person, newest first.
func (c *Client) FetchRecentEvents(ctx context.Context, name string, limit int) ([]models.ActivityEvent, error) {
	query := url.Values{"user": {name}, "limit": {fmt.Sprintf("%d", limit)}}
	return c.fetchEvents(ctx, "/api/events/recent", query)
}

// FetchTodayEvents returns all of today's snapshots for one person.
func (c *Client) FetchTodayEvents(ctx context.Context, name string) ([]models.ActivityEvent, error) {
	query := url.Values{"user": {name}}
	return c.fetchEvents(ctx, "/api/events/today", query)
}

func (c *Client) fetchEvents(ctx context.Context, path string, query url.Values) ([]models.ActivityEvent, error) {
	var wire []apiEvent
	if err := c.getJSON(ctx, path, query, &wire); err != nil {
		return nil, err
	}
	events := make([]models.ActivityEvent, 0, len(wire))
	for i := range wire {
		events = append(events, wire[i].toModel())
	}
	return events, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.log.Warn("status API timed out", zap.String("url", u))
			return errors.Wrap(err, "request timed out")
		}
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("request failed: HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}
