package render

import (
	"fmt"
	"strings"

	"github.com/hugo/presencebot/internal/aggregate"
	"github.com/hugo/presencebot/internal/classify"
	"github.com/hugo/presencebot/internal/models"
	"github.com/hugo/presencebot/pkg/title"
	"github.com/hugo/presencebot/pkg/utils"
)

// Fixed output vocabulary. Localization beyond these strings is out of
// scope.
const (
	lineAsleep   = "%s seems asleep"
	lineNoData   = "no data"
	lineAdvisory = "busy — do not disturb"
	timeLayout   = "01-02 15:04"
)

// PersonState renders the current-status text block for one person.
// Asleep collapses everything into a single line; otherwise a phone block
// and, unless suppressed by policy, a desktop block are emitted.
func PersonState(state models.PersonState, profile *classify.Profile) string {
	if state.Asleep {
		return fmt.Sprintf(lineAsleep, state.Name)
	}

	var b strings.Builder
	b.WriteString(state.Name)
	b.WriteByte('\n')

	writeBlock(&b, "Phone", state.PhoneEvent, profile, phoneSource(state.PhoneEvent, profile), true)

	if !state.HideDesktop {
		writeBlock(&b, "Desktop", state.PCEvent, profile, desktopSource(state.PCEvent, profile), false)
	}

	if state.Busy {
		b.WriteString(lineAdvisory)
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

// writeBlock emits one device section: status line, optional content
// lines, then the timestamp and source label.
func writeBlock(b *strings.Builder, header string, e *models.ActivityEvent, profile *classify.Profile, source string, phone bool) {
	if e == nil {
		fmt.Fprintf(b, "[%s] %s\n", header, lineNoData)
		return
	}

	c := title.Classify(e.RawTitle())
	switch c.Kind {
	case title.Music:
		fmt.Fprintf(b, "[%s] ♪ %s\n", header, orUnknown(c.Song))
		fmt.Fprintf(b, "  via %s\n", orUnknown(c.App))
	case title.Browser:
		if phone {
			writeAppLine(b, header, title.PhoneApp(e.RawTitle()), profile)
		} else {
			fmt.Fprintf(b, "[%s] %s\n", header, orUnknown(c.App))
			fmt.Fprintf(b, "  %s\n", orUnknown(c.PageTitle))
		}
	default:
		writeAppLine(b, header, c.App, profile)
	}

	fmt.Fprintf(b, "  %s · %s\n", e.AccessTime.In(aggregate.DayZone).Format(timeLayout), source)
}

func writeAppLine(b *strings.Builder, header, app string, profile *classify.Profile) {
	switch r := classify.App(app, profile); r.Category {
	case classify.ScreenOff:
		fmt.Fprintf(b, "[%s] screen off\n", header)
	case classify.Noise:
		fmt.Fprintf(b, "[%s] nothing going on\n", header)
	case classify.Known:
		fmt.Fprintf(b, "[%s] %s\n", header, r.Text)
	default:
		fmt.Fprintf(b, "[%s] ▶App: %s\n", header, orUnknown(app))
	}
}

func phoneSource(e *models.ActivityEvent, profile *classify.Profile) string {
	if profile != nil && profile.PhoneLabel != "" {
		return profile.PhoneLabel
	}
	if e != nil {
		return e.Machine
	}
	return ""
}

func desktopSource(e *models.ActivityEvent, profile *classify.Profile) string {
	if profile != nil && profile.DesktopLabel != "" {
		return profile.DesktopLabel
	}
	if e != nil {
		return e.Machine
	}
	return ""
}

// DailyReport renders the same-day usage breakdown: a header sentence
// with the capped total percentage, then one ranked list per device with
// non-zero coverage. A device with no heartbeats produces no section at
// all.
func DailyReport(r models.DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s covered %.1f%% of the day so far\n", r.PersonName, r.TotalPercent)

	writeUsage(&b, "Phone", r.Phone)
	writeUsage(&b, "Desktop", r.Desktop)

	out := strings.TrimRight(b.String(), "\n")
	if r.Phone.CoveredSeconds == 0 && r.Desktop.CoveredSeconds == 0 {
		return fmt.Sprintf("%s: nothing to show today", r.PersonName)
	}
	return out
}

func writeUsage(b *strings.Builder, header string, usage models.DeviceUsage) {
	if usage.CoveredSeconds == 0 {
		return
	}
	fmt.Fprintf(b, "[%s] %s tracked\n", header, utils.FormatRoundedUnit(usage.CoveredSeconds))
	for i, bucket := range usage.Buckets {
		fmt.Fprintf(b, " %d. %s — %s (%.1f%%)\n",
			i+1, orUnknown(bucket.AppName), utils.FormatCompact(bucket.Seconds), bucket.Percent)
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return title.UnknownApp
	}
	return s
}
