package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator splits window titles into segments. Both browser-style titles
// ("page - ... - application") and music-player titles ("song - player")
// use it.
const Separator = " - "

// UnknownApp is substituted whenever extraction yields nothing usable.
const UnknownApp = "unknown"

// Kind tags the result of classifying a raw window title.
type Kind int

const (
	Plain Kind = iota
	Music
	Browser
)

func (k Kind) String() string {
	switch k {
	case Music:
		return "music"
	case Browser:
		return "browser"
	default:
		return "plain"
	}
}

// Classified is the parsed view of one raw title. It is derived on demand
// and never stored.
type Classified struct {
	Kind      Kind
	App       string
	Song      string // Music only
	PageTitle string // Browser only
}

// musicMarkers are the note symbols a playing-music title starts with
// after any corrupted-prefix noise is removed.
var musicMarkers = map[rune]bool{
	'\U0001F3B5': true, // 🎵
	'\U0001F3B6': true, // 🎶
}

// Classify parses a raw window title into one of the three title shapes.
//
// Music wins: after stripping leading noise the title must start with a
// note marker; the remainder splits at the first " - " into song (left)
// and player app (right), or both equal the remainder when there is no
// separator. A non-music title with two or more non-empty segments is
// browser-style: last segment is the application, the rest rejoined is
// the page title. Everything else is plain; its app is the text before
// the first separator, which may be empty; callers substitute
// UnknownApp.
func Classify(raw string) Classified {
	stripped := StripLeadingNoise(raw)
	if stripped == "" {
		return Classified{Kind: Plain, App: UnknownApp}
	}

	if r, size := utf8.DecodeRuneInString(stripped); musicMarkers[r] {
		rest := StripLeadingNoise(stripped[size:])
		song, app, found := strings.Cut(rest, Separator)
		if !found {
			return Classified{Kind: Music, App: rest, Song: rest}
		}
		return Classified{Kind: Music, App: app, Song: song}
	}

	parts := strings.Split(raw, Separator)
	if len(parts) >= 2 && allNonEmpty(parts) {
		last := len(parts) - 1
		return Classified{
			Kind:      Browser,
			App:       parts[last],
			PageTitle: strings.Join(parts[:last], Separator),
		}
	}

	app, _, _ := strings.Cut(raw, Separator)
	return Classified{Kind: Plain, App: app}
}

// StripLeadingNoise removes a prefix of replacement characters, whitespace
// and isolated surrogate code points. Multi-byte emoji prefixes sometimes
// arrive corrupted over the wire and would otherwise hide the music marker.
func StripLeadingNoise(s string) string {
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError || unicode.IsSpace(r) || (r >= 0xD800 && r <= 0xDFFF) {
			s = s[size:]
			continue
		}
		break
	}
	return s
}

func allNonEmpty(parts []string) bool {
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return false
		}
	}
	return true
}

// PhoneApp derives the grouping app name for a phone title: the music
// player for music titles, otherwise the noise-stripped first segment.
func PhoneApp(raw string) string {
	c := Classify(raw)
	if c.Kind == Music {
		return c.App
	}
	app, _, _ := strings.Cut(raw, Separator)
	return StripLeadingNoise(app)
}

// DesktopApp derives the grouping app name for a desktop title: the music
// player for music titles, the trailing application segment for
// browser-style titles, otherwise the noise-stripped first segment.
func DesktopApp(raw string) string {
	c := Classify(raw)
	switch c.Kind {
	case Music, Browser:
		return c.App
	default:
		app, _, _ := strings.Cut(raw, Separator)
		return StripLeadingNoise(app)
	}
}
