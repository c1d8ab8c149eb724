package classify

import "strings"

// Category is the display class of an extracted app name.
type Category int

const (
	Generic Category = iota
	Noise
	ScreenOff
	Known
)

func (c Category) String() string {
	switch c {
	case Noise:
		return "noise"
	case ScreenOff:
		return "screen-off"
	case Known:
		return "known"
	default:
		return "generic"
	}
}

// Result pairs a category with the curated text for Known apps.
type Result struct {
	Category Category
	Text     string
}

// screenOffApps is the subset of noise apps that specifically mean the
// display is off. Matching is exact on the trimmed name, never substring,
// so a legitimate app whose name merely contains one of these strings is
// not swallowed.
var screenOffApps = map[string]bool{
	"息屏":    true,
	"屏幕关闭":  true,
	"锁屏":    true,
	"待机":    true,
}

// noiseApps are system surfaces whose presence is not meaningful activity.
// Every screen-off app is also noise; the reverse does not hold.
var noiseApps = map[string]bool{
	"系统界面":       true,
	"系统桌面":       true,
	"SystemUI":   true,
	"搜狗输入法":      true,
	"百度输入法":      true,
	"讯飞输入法":      true,
	"指纹识别":       true,
	"人脸识别":       true,
	"com.miui.home": true,
}

// App classifies an extracted app name. Lookup order matters: the
// screen-off subset is checked before the wider noise set, and per-person
// special casing is resolved against the supplied profile table.
func App(name string, profile *Profile) Result {
	trimmed := strings.TrimSpace(name)
	if screenOffApps[trimmed] {
		return Result{Category: ScreenOff}
	}
	if noiseApps[trimmed] {
		return Result{Category: Noise}
	}
	if profile != nil {
		if text, ok := profile.SpecialApps[trimmed]; ok {
			return Result{Category: Known, Text: text}
		}
	}
	return Result{Category: Generic}
}

// IsScreenOff reports whether the trimmed app name is in the screen-off
// subset. Used by the asleep decision.
func IsScreenOff(name string) bool {
	return screenOffApps[strings.TrimSpace(name)]
}

// IsNoise reports whether the trimmed app name is a noise app. Screen-off
// implies noise.
func IsNoise(name string) bool {
	trimmed := strings.TrimSpace(name)
	return screenOffApps[trimmed] || noiseApps[trimmed]
}
