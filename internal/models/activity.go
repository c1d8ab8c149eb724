package models

import "time"

// ActivityEvent is one observed snapshot reported by a monitored device.
// The fetch layer owns construction; everything downstream only reads it.
type ActivityEvent struct {
	Machine     string    `json:"machine"`
	WindowTitle string    `json:"window_title,omitempty"`
	App         string    `json:"app,omitempty"`
	AccessTime  time.Time `json:"access_time"`
}

// RawTitle returns the best available title text for classification:
// the window title when present, otherwise the reported app string.
func (e *ActivityEvent) RawTitle() string {
	if e.WindowTitle != "" {
		return e.WindowTitle
	}
	return e.App
}

// PersonState is the displayable current state of one tracked person,
// built per query from their most recent event per device kind.
type PersonState struct {
	Name        string         `json:"name"`
	PhoneEvent  *ActivityEvent `json:"phone_event,omitempty"`
	PCEvent     *ActivityEvent `json:"pc_event,omitempty"`
	Asleep      bool           `json:"asleep"`
	Busy        bool           `json:"busy"`
	HideDesktop bool           `json:"-"`
}

// AppUsageBucket aggregates one day's heartbeats for a single app on a
// single device kind.
type AppUsageBucket struct {
	AppName        string  `json:"app_name"`
	HeartbeatCount int     `json:"heartbeat_count"`
	Seconds        int64   `json:"seconds"`
	Percent        float64 `json:"percent"`
}

// DeviceUsage is the per-device half of a daily report. CoveredSeconds is
// heartbeat count times the nominal interval, a model approximation that
// may exceed wall-clock time when heartbeats arrive faster than nominal.
type DeviceUsage struct {
	Buckets        []AppUsageBucket `json:"buckets"`
	CoveredSeconds int64            `json:"covered_seconds"`
}

// DailyReport summarises one person's same-day activity across devices.
type DailyReport struct {
	PersonName     string      `json:"person_name"`
	ElapsedSeconds int64       `json:"elapsed_seconds"`
	Phone          DeviceUsage `json:"phone"`
	Desktop        DeviceUsage `json:"desktop"`
	TotalPercent   float64     `json:"total_percent"`
}
