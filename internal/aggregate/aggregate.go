package aggregate

import (
	"sort"
	"time"

	"github.com/hugo/presencebot/internal/models"
	"github.com/hugo/presencebot/pkg/devicekind"
	"github.com/hugo/presencebot/pkg/title"
)

// DayZone is the fixed reference zone the reporting day is anchored to.
var DayZone = time.FixedZone("UTC+8", 8*3600)

// DayStart returns midnight of now's calendar day in DayZone.
func DayStart(now time.Time) time.Time {
	local := now.In(DayZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, DayZone)
}

// Aggregator groups a day's heartbeats into per-app usage buckets.
type Aggregator struct {
	// KindOf partitions events by machine identifier. This path never
	// uses fixed-device overrides; it is generic by design.
	KindOf devicekind.Func
}

func New() *Aggregator {
	return &Aggregator{KindOf: devicekind.Detect}
}

// Aggregate builds the daily report for one person from today's events.
// Events outside [dayStart, dayStart+24h) are dropped; upstream already
// filters, this re-validates. intervalSeconds is the nominal heartbeat
// interval and must be positive.
func (a *Aggregator) Aggregate(name string, events []models.ActivityEvent, intervalSeconds int64, dayStart, now time.Time) models.DailyReport {
	dayEnd := dayStart.Add(24 * time.Hour)

	elapsed := int64(now.Sub(dayStart) / time.Second)
	if elapsed < 1 {
		elapsed = 1
	}

	kindOf := a.KindOf
	if kindOf == nil {
		kindOf = devicekind.Detect
	}

	phoneCounts := make(map[string]int)
	desktopCounts := make(map[string]int)
	for i := range events {
		e := &events[i]
		if e.AccessTime.Before(dayStart) || !e.AccessTime.Before(dayEnd) {
			continue
		}
		switch kindOf(e.Machine) {
		case devicekind.Phone:
			phoneCounts[appKey(title.PhoneApp(e.RawTitle()))]++
		case devicekind.Desktop:
			desktopCounts[appKey(title.DesktopApp(e.RawTitle()))]++
		}
	}

	report := models.DailyReport{
		PersonName:     name,
		ElapsedSeconds: elapsed,
		Phone:          buildUsage(phoneCounts, intervalSeconds),
		Desktop:        buildUsage(desktopCounts, intervalSeconds),
	}

	covered := report.Phone.CoveredSeconds + report.Desktop.CoveredSeconds
	report.TotalPercent = capPercent(float64(covered) / float64(elapsed) * 100)
	return report
}

func buildUsage(counts map[string]int, intervalSeconds int64) models.DeviceUsage {
	var usage models.DeviceUsage
	for _, n := range counts {
		usage.CoveredSeconds += int64(n) * intervalSeconds
	}

	for app, n := range counts {
		seconds := int64(n) * intervalSeconds
		var percent float64
		if usage.CoveredSeconds > 0 {
			percent = capPercent(float64(seconds) / float64(usage.CoveredSeconds) * 100)
		}
		usage.Buckets = append(usage.Buckets, models.AppUsageBucket{
			AppName:        app,
			HeartbeatCount: n,
			Seconds:        seconds,
			Percent:        percent,
		})
	}

	sort.Slice(usage.Buckets, func(i, j int) bool {
		if usage.Buckets[i].Seconds != usage.Buckets[j].Seconds {
			return usage.Buckets[i].Seconds > usage.Buckets[j].Seconds
		}
		return usage.Buckets[i].AppName < usage.Buckets[j].AppName
	})
	return usage
}

func appKey(app string) string {
	if app == "" {
		return title.UnknownApp
	}
	return app
}

func capPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	return p
}
