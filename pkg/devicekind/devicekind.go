package devicekind

import "strings"

// Kind identifies the class of device a machine identifier belongs to.
type Kind int

const (
	Phone Kind = iota
	Desktop
)

func (k Kind) String() string {
	if k == Phone {
		return "phone"
	}
	return "desktop"
}

// Func decides the device kind for a free-text machine identifier.
// Keeping this as a function type lets callers swap the keyword heuristic
// for an explicit device-registry lookup later.
type Func func(machine string) Kind

// phoneKeywords are matched case-insensitively as substrings of the
// machine identifier. The identifier is free text reported by the
// collecting device, so this is a heuristic, not an exact registry.
var phoneKeywords = []string{"phone", "android", "mobile", "iq13", "iqoo"}

// Detect classifies a machine identifier. Anything that does not look
// like a phone is treated as a desktop.
func Detect(machine string) Kind {
	lower := strings.ToLower(machine)
	for _, kw := range phoneKeywords {
		if strings.Contains(lower, kw) {
			return Phone
		}
	}
	return Desktop
}
