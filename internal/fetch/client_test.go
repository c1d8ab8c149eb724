package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchRecentEvents(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[
			{"machine":"alice-android","window_title":"微信","access_time":1787000000},
			{"machine":"DESKTOP-X","window_title":"Terminal","access_time":1786999940}
		]`)
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	events, err := c.FetchRecentEvents(context.Background(), "alice", 20)
	if err != nil {
		t.Fatalf("FetchRecentEvents error: %v", err)
	}

	if gotPath != "/api/events/recent" {
		t.Errorf("path = %s", gotPath)
	}
	if !strings.Contains(gotQuery, "user=alice") || !strings.Contains(gotQuery, "limit=20") {
		t.Errorf("query = %s", gotQuery)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Machine != "alice-android" || events[0].WindowTitle != "微信" {
		t.Errorf("first event = %+v", events[0])
	}
	if !events[0].AccessTime.Equal(time.Unix(1787000000, 0)) {
		t.Errorf("access time = %v", events[0].AccessTime)
	}
}

func TestFetchTodayEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events/today" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	events, err := c.FetchTodayEvents(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FetchTodayEvents error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d, want 0", len(events))
	}
}

func TestListTrackedNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `["alice","bob"]`)
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	names, err := c.ListTrackedNames(context.Background())
	if err != nil {
		t.Fatalf("ListTrackedNames error: %v", err)
	}
	if len(names) != 2 || names[0] != "alice" {
		t.Errorf("names = %v", names)
	}
}

func TestHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, time.Second, nil)
	_, err := c.FetchRecentEvents(context.Background(), "alice", 20)
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if !strings.Contains(err.Error(), "request failed: HTTP 500") {
		t.Errorf("error = %v, want request failed: HTTP 500", err)
	}
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, 50*time.Millisecond, nil)
	_, err := c.FetchRecentEvents(context.Background(), "alice", 20)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %v, want a timeout message", err)
	}
}

func TestWithBase(t *testing.T) {
	c := New("http://a", time.Second, nil)

	if c.WithBase("") != c {
		t.Error("empty override must return the same client")
	}
	if c.WithBase("http://a") != c {
		t.Error("identical base must return the same client")
	}

	other := c.WithBase("http://b")
	if other == c || other.base != "http://b" {
		t.Errorf("override client = %+v", other)
	}
	if other.http != c.http {
		t.Error("override must share the underlying HTTP client")
	}
}
