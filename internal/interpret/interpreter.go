package interpret

import (
	"sort"
	"strings"
	"time"

	"github.com/hugo/presencebot/internal/classify"
	"github.com/hugo/presencebot/internal/models"
	"github.com/hugo/presencebot/pkg/devicekind"
	"github.com/hugo/presencebot/pkg/title"
)

// DesktopStaleAfter is how long a desktop may be silent before it stops
// counting as awake for the asleep decision.
const DesktopStaleAfter = 4 * time.Hour

// Interpreter decides a person's displayable state from already-fetched
// events. It performs no I/O.
type Interpreter struct {
	// KindOf partitions events by machine identifier. Defaults to the
	// keyword heuristic.
	KindOf devicekind.Func

	// Now is swappable for tests.
	Now func() time.Time
}

func New() *Interpreter {
	return &Interpreter{KindOf: devicekind.Detect, Now: time.Now}
}

// Interpret builds the current state for one person. Events are expected
// newest-first; unordered input is sorted here rather than silently
// trusted.
func (it *Interpreter) Interpret(name string, events []models.ActivityEvent, profile *classify.Profile) models.PersonState {
	events = ensureNewestFirst(events)

	state := models.PersonState{Name: name}
	if profile != nil {
		state.HideDesktop = profile.HideDesktop
	}

	for i := range events {
		e := &events[i]
		switch it.kindFor(e, profile) {
		case devicekind.Phone:
			if state.PhoneEvent == nil {
				state.PhoneEvent = e
			}
		case devicekind.Desktop:
			if state.PCEvent == nil {
				state.PCEvent = e
			}
		}
		if state.PhoneEvent != nil && state.PCEvent != nil {
			break
		}
	}

	state.Asleep = it.asleep(&state)
	state.Busy = busy(&state, profile)
	return state
}

// asleep holds iff the phone reports a screen-off app while the desktop
// has been silent for over DesktopStaleAfter (or never spoke at all).
func (it *Interpreter) asleep(state *models.PersonState) bool {
	if state.PhoneEvent == nil {
		return false
	}
	app := title.PhoneApp(state.PhoneEvent.RawTitle())
	if !classify.IsScreenOff(app) {
		return false
	}
	return it.desktopStale(state.PCEvent)
}

func (it *Interpreter) desktopStale(pc *models.ActivityEvent) bool {
	if pc == nil {
		return true
	}
	return it.Now().Sub(pc.AccessTime) > DesktopStaleAfter
}

// busy holds when the profile's named desktop application occurs inside
// the phone activity text. Containment match, not equality.
func busy(state *models.PersonState, profile *classify.Profile) bool {
	if profile == nil || profile.BusyApp == "" || state.PhoneEvent == nil {
		return false
	}
	return strings.Contains(state.PhoneEvent.RawTitle(), profile.BusyApp)
}

// kindFor resolves the device kind for one event, honoring a profile's
// fixed device identifiers when present.
func (it *Interpreter) kindFor(e *models.ActivityEvent, profile *classify.Profile) devicekind.Kind {
	if profile.UsesFixedDevices() {
		switch e.Machine {
		case profile.PhoneDeviceID:
			return devicekind.Phone
		case profile.DesktopDeviceID:
			return devicekind.Desktop
		default:
			// Unlisted machines are invisible to a fixed-device profile.
			return devicekind.Kind(-1)
		}
	}
	kindOf := it.KindOf
	if kindOf == nil {
		kindOf = devicekind.Detect
	}
	return kindOf(e.Machine)
}

// ensureNewestFirst verifies the descending-order precondition and sorts
// only when it is violated, leaving the (common) already-ordered input
// untouched.
func ensureNewestFirst(events []models.ActivityEvent) []models.ActivityEvent {
	for i := 1; i < len(events); i++ {
		if events[i].AccessTime.After(events[i-1].AccessTime) {
			sorted := make([]models.ActivityEvent, len(events))
			copy(sorted, events)
			sort.SliceStable(sorted, func(a, b int) bool {
				return sorted[a].AccessTime.After(sorted[b].AccessTime)
			})
			return sorted
		}
	}
	return events
}
