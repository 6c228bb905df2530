package policy

import (
	"fmt"
	"strings"
)

// ResourceType is the kind of resource a request fetches.
type ResourceType int

const (
	Other ResourceType = iota
	MainFrame
	SubFrame
	Stylesheet
	Script
	Image
	Font
	Object
	XHR
	Ping
	CSPReport
	Media
	WebSocket
)

var resourceNames = map[ResourceType]string{
	Other:      "other",
	MainFrame:  "mainFrame",
	SubFrame:   "subFrame",
	Stylesheet: "stylesheet",
	Script:     "script",
	Image:      "image",
	Font:       "font",
	Object:     "object",
	XHR:        "xhr",
	Ping:       "ping",
	CSPReport:  "cspReport",
	Media:      "media",
	WebSocket:  "webSocket",
}

func (r ResourceType) String() string {
	if name, ok := resourceNames[r]; ok {
		return name
	}
	return "other"
}

// ParseResourceType maps a resource type name to its ResourceType. Matching
// ignores case, "-" and "_".
func ParseResourceType(name string) (ResourceType, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	if key == "" {
		return Other, nil
	}
	for r, n := range resourceNames {
		if strings.ToLower(n) == key {
			return r, nil
		}
	}
	return Other, fmt.Errorf("unknown resource type: %s", name)
}
