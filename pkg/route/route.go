// Package route decides where a navigation target should be opened.
package route

import (
	"strings"

	"navpolicy/pkg/scheme"
)

// Decision is the outcome of routing a navigation target.
type Decision int

const (
	// LoadInView loads the target inside the current view.
	LoadInView Decision = iota
	// OpenExternally hands the target to the operating system.
	OpenExternally
	// AllowInPageScheme lets an about:, data: or same-origin blob: target
	// render in the existing view.
	AllowInPageScheme
)

func (d Decision) String() string {
	switch d {
	case LoadInView:
		return "load-in-view"
	case OpenExternally:
		return "open-externally"
	case AllowInPageScheme:
		return "allow-in-page-scheme"
	default:
		return "unknown"
	}
}

var internalSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"about": true,
	"blob":  true,
	"data":  true,
}

// Schemes without an authority part that still belong to another app.
var externalSchemes = map[string]bool{
	"mailto": true,
	"tel":    true,
	"sms":    true,
}

// Route classifies target for a view currently showing currentOrigin.
// currentOrigin may be a serialized origin or any URL of the current page.
// Anything that is not explicitly external stays in the view.
func Route(target string, currentOrigin string) Decision {
	target = strings.TrimSpace(target)
	name, _, ok := scheme.Parse(target)
	if !ok {
		return LoadInView
	}

	if internalSchemes[name] {
		if allowInPage(name, target, currentOrigin) {
			return AllowInPageScheme
		}
		return LoadInView
	}

	if scheme.HasAuthority(target) || externalSchemes[name] {
		return OpenExternally
	}

	return LoadInView
}

// IsInternal reports whether the scheme of target is rendered by the view
// itself.
func IsInternal(target string) bool {
	return internalSchemes[scheme.Of(strings.TrimSpace(target))]
}

func allowInPage(name string, target string, currentOrigin string) bool {
	switch name {
	case "about", "data":
		return true
	case "blob":
		return SameOrigin(target, currentOrigin)
	default:
		return false
	}
}
