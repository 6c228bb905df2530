// Package filtering blocks cross-site tracking requests against a set of
// known tracker domains.
package filtering

// BuiltinLocation is the source location that resolves to DefaultTrackers.
const BuiltinLocation = "builtin:trackers"

// DefaultTrackers lists well-known cross-site tracking and ad-serving
// domains. It is used when no tracker list files are configured.
var DefaultTrackers = []string{
	"2mdn.net",
	"adnxs.com",
	"adsrvr.org",
	"amazon-adsystem.com",
	"bluekai.com",
	"chartbeat.com",
	"criteo.com",
	"criteo.net",
	"demdex.net",
	"doubleclick.net",
	"everesttech.net",
	"facebook.net",
	"google-analytics.com",
	"googleadservices.com",
	"googlesyndication.com",
	"googletagmanager.com",
	"googletagservices.com",
	"hotjar.com",
	"krxd.net",
	"mathtag.com",
	"moatads.com",
	"mixpanel.com",
	"outbrain.com",
	"pubmatic.com",
	"quantserve.com",
	"rubiconproject.com",
	"scorecardresearch.com",
	"segment.io",
	"taboola.com",
	"yieldmo.com",
}
