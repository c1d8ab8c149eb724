package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/hugo/presencebot/internal/models"
)

func heartbeat(machine, title string, at time.Time) models.ActivityEvent {
	return models.ActivityEvent{Machine: machine, WindowTitle: title, AccessTime: at}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.05
}

func TestDayStart(t *testing.T) {
	// 2026-08-27 01:30 UTC is 09:30 the same day in UTC+8.
	now := time.Date(2026, 8, 27, 1, 30, 0, 0, time.UTC)
	start := DayStart(now)

	want := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)
	if !start.Equal(want) {
		t.Errorf("DayStart = %v, want %v", start, want)
	}
}

func TestAggregateSingleApp(t *testing.T) {
	dayStart := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)
	now := dayStart.Add(10 * time.Minute)

	var events []models.ActivityEvent
	for i := 0; i < 10; i++ {
		events = append(events, heartbeat("alice-android", "X", dayStart.Add(time.Duration(i)*time.Minute)))
	}

	r := New().Aggregate("alice", events, 60, dayStart, now)

	if len(r.Phone.Buckets) != 1 {
		t.Fatalf("phone buckets = %d, want 1", len(r.Phone.Buckets))
	}
	b := r.Phone.Buckets[0]
	if b.AppName != "X" || b.HeartbeatCount != 10 || b.Seconds != 600 {
		t.Errorf("bucket = %+v, want X/10/600", b)
	}
	if !almostEqual(b.Percent, 100.0) {
		t.Errorf("bucket percent = %v, want 100.0", b.Percent)
	}
	if r.Phone.CoveredSeconds != 600 {
		t.Errorf("covered = %d, want 600", r.Phone.CoveredSeconds)
	}
	if r.Desktop.CoveredSeconds != 0 || len(r.Desktop.Buckets) != 0 {
		t.Errorf("desktop usage = %+v, want empty", r.Desktop)
	}
	// 600s of heartbeats in a 600s elapsed window.
	if !almostEqual(r.TotalPercent, 100.0) {
		t.Errorf("total percent = %v, want 100.0", r.TotalPercent)
	}
}

func TestAggregatePhoneOnlyDay(t *testing.T) {
	dayStart := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)
	now := dayStart.Add(time.Hour)

	var events []models.ActivityEvent
	for i := 0; i < 5; i++ {
		events = append(events, heartbeat("alice-android", "哔哩哔哩", dayStart.Add(time.Duration(i)*time.Minute)))
	}

	r := New().Aggregate("alice", events, 60, dayStart, now)

	if r.Phone.CoveredSeconds != 300 {
		t.Errorf("phone covered = %d, want 300", r.Phone.CoveredSeconds)
	}
	if r.ElapsedSeconds != 3600 {
		t.Errorf("elapsed = %d, want 3600", r.ElapsedSeconds)
	}
	if !almostEqual(r.TotalPercent, 8.3) {
		t.Errorf("total percent = %v, want ~8.3", r.TotalPercent)
	}
	if len(r.Desktop.Buckets) != 0 {
		t.Errorf("desktop buckets = %d, want none", len(r.Desktop.Buckets))
	}
}

func TestAggregateCapsPercentages(t *testing.T) {
	dayStart := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)
	now := dayStart.Add(time.Minute)

	// Heartbeats arriving far faster than nominal inflate covered time
	// past wall clock; percentages stay capped.
	var events []models.ActivityEvent
	for i := 0; i < 100; i++ {
		events = append(events, heartbeat("alice-android", "X", dayStart.Add(time.Duration(i)*time.Second)))
	}

	r := New().Aggregate("alice", events, 60, dayStart, now)

	if r.Phone.CoveredSeconds != 6000 {
		t.Errorf("covered = %d, want 6000 (model approximation)", r.Phone.CoveredSeconds)
	}
	if r.TotalPercent > 100.0 {
		t.Errorf("total percent = %v, must not exceed 100", r.TotalPercent)
	}
	for _, b := range r.Phone.Buckets {
		if b.Percent > 100.0 {
			t.Errorf("bucket percent = %v, must not exceed 100", b.Percent)
		}
	}
}

func TestAggregateDropsEventsOutsideWindow(t *testing.T) {
	dayStart := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)
	now := dayStart.Add(2 * time.Hour)

	events := []models.ActivityEvent{
		heartbeat("alice-android", "X", dayStart.Add(-time.Second)),     // yesterday
		heartbeat("alice-android", "X", dayStart),                       // first second counts
		heartbeat("alice-android", "X", dayStart.Add(24*time.Hour)),     // tomorrow
		heartbeat("alice-android", "X", dayStart.Add(24*time.Hour-1)),   // last nanosecond counts
	}

	r := New().Aggregate("alice", events, 60, dayStart, now)
	if got := r.Phone.Buckets[0].HeartbeatCount; got != 2 {
		t.Errorf("heartbeats = %d, want 2 inside the half-open window", got)
	}
}

func TestAggregateElapsedFloor(t *testing.T) {
	dayStart := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)

	r := New().Aggregate("alice", nil, 60, dayStart, dayStart)
	if r.ElapsedSeconds != 1 {
		t.Errorf("elapsed = %d, want floor of 1", r.ElapsedSeconds)
	}
	if r.TotalPercent != 0 {
		t.Errorf("total percent = %v, want 0 with no events", r.TotalPercent)
	}
}

func TestAggregateGroupingKeys(t *testing.T) {
	dayStart := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)
	now := dayStart.Add(time.Hour)

	events := []models.ActivityEvent{
		heartbeat("alice-android", "🎵 晴天 - 网易云音乐", dayStart.Add(1*time.Minute)),
		heartbeat("alice-android", "哔哩哔哩 - 动态", dayStart.Add(2*time.Minute)),
		heartbeat("DESKTOP-X", "知乎 - 个人 - Microsoft Edge", dayStart.Add(3*time.Minute)),
		heartbeat("DESKTOP-X", "Terminal", dayStart.Add(4*time.Minute)),
		heartbeat("DESKTOP-X", "", dayStart.Add(5*time.Minute)),
	}

	r := New().Aggregate("alice", events, 60, dayStart, now)

	phoneApps := bucketApps(r.Phone.Buckets)
	if !phoneApps["网易云音乐"] || !phoneApps["哔哩哔哩"] {
		t.Errorf("phone apps = %v, want music player and first segment", phoneApps)
	}

	desktopApps := bucketApps(r.Desktop.Buckets)
	if !desktopApps["Microsoft Edge"] || !desktopApps["Terminal"] || !desktopApps["unknown"] {
		t.Errorf("desktop apps = %v, want browser segment, plain and unknown", desktopApps)
	}
}

func TestAggregateBucketsSortedDescending(t *testing.T) {
	dayStart := time.Date(2026, 8, 27, 0, 0, 0, 0, DayZone)
	now := dayStart.Add(time.Hour)

	var events []models.ActivityEvent
	add := func(title string, n int, offset time.Duration) {
		for i := 0; i < n; i++ {
			events = append(events, heartbeat("alice-android", title, dayStart.Add(offset+time.Duration(i)*time.Minute)))
		}
	}
	add("少数", 2, 0)
	add("多数", 7, 10*time.Minute)
	add("中等", 4, 30*time.Minute)

	r := New().Aggregate("alice", events, 60, dayStart, now)
	got := make([]string, 0, len(r.Phone.Buckets))
	for _, b := range r.Phone.Buckets {
		got = append(got, b.AppName)
	}
	want := []string{"多数", "中等", "少数"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket order = %v, want %v", got, want)
		}
	}
}

func bucketApps(buckets []models.AppUsageBucket) map[string]bool {
	apps := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		apps[b.AppName] = true
	}
	return apps
}
