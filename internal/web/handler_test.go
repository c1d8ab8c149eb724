package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hugo/presencebot/internal/bot"
	"github.com/hugo/presencebot/internal/cache"
	"github.com/hugo/presencebot/internal/config"
	"github.com/hugo/presencebot/internal/fetch"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"machine":"alice-android","window_title":"微信","access_time":%d}]`,
			time.Now().Unix())
	}))
	t.Cleanup(api.Close)

	cfg := config.Default()
	cfg.API.Base = api.URL
	cfg.Persons = []config.PersonConfig{{Name: "alice", Trigger: "alice?"}}

	client := fetch.New(api.URL, time.Second, nil)
	replies := cache.New(time.Minute, nil)
	t.Cleanup(replies.Close)
	svc := bot.NewService(cfg, client, replies, nil)

	mux := http.NewServeMux()
	NewHandler(cfg, svc, nil).SetupRoutes(mux)
	return mux
}

func TestHandlePerson(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/person?name=alice", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["name"] != "alice" || !strings.Contains(body["text"], "微信") {
		t.Errorf("body = %v", body)
	}
}

func TestHandlePersonMissingName(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/person", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlePersonMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/person?name=alice", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
