package classify

// Profile carries the per-person display tables. Special cases are data,
// not branching logic, so richer treatment for one person is additive
// configuration.
type Profile struct {
	Name string

	// Fixed device identifiers. When set, event partitioning matches the
	// machine field exactly instead of using the keyword heuristic. Only
	// the distinguished legacy profile uses this.
	PhoneDeviceID   string
	DesktopDeviceID string

	// Labels baked into rendered source lines; empty means the raw
	// machine identifier is shown.
	PhoneLabel   string
	DesktopLabel string

	// SpecialApps maps an exact app name to curated flavor text.
	SpecialApps map[string]string

	// BusyApp names a desktop application; when it occurs inside the
	// phone activity text (containment, not equality) the whole report
	// gains a do-not-disturb advisory line.
	BusyApp string

	// HideDesktop suppresses the desktop block entirely regardless of
	// available desktop events.
	HideDesktop bool
}

// DefaultSpecialApps is the table applied to every person without richer
// per-person configuration.
var DefaultSpecialApps = map[string]string{
	"明日方舟": "got food (Arknights)",
	"哔哩哔哩": "watching bilibili",
	"知乎":   "browsing Zhihu",
}

// UsesFixedDevices reports whether this profile partitions events by
// exact machine identifier rather than the keyword heuristic.
func (p *Profile) UsesFixedDevices() bool {
	return p != nil && (p.PhoneDeviceID != "" || p.DesktopDeviceID != "")
}

// NewProfile returns a profile with the default special-app table.
func NewProfile(name string) *Profile {
	apps := make(map[string]string, len(DefaultSpecialApps))
	for k, v := range DefaultSpecialApps {
		apps[k] = v
	}
	return &Profile{Name: name, SpecialApps: apps}
}
