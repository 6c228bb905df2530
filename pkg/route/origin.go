package route

import (
	"net/url"
	"strings"

	"navpolicy/pkg/scheme"
)

// Opaque is the serialization of an origin that cannot be compared.
const Opaque = "null"

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
	"ftp":   "21",
}

// Origin returns the serialized origin of raw: scheme://host[:port] with
// the default port dropped. blob: URLs take the origin of the URL they wrap.
// Schemes without a tuple origin, and unparseable input, yield Opaque.
func Origin(raw string) string {
	raw = strings.TrimSpace(raw)
	name, rest, ok := scheme.Parse(raw)
	if !ok {
		return Opaque
	}
	if name == "blob" {
		return Origin(rest)
	}
	defaultPort, tuple := defaultPorts[name]
	if !tuple {
		return Opaque
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Opaque
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Opaque
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	origin := name + "://" + host
	if port := u.Port(); port != "" && port != defaultPort {
		origin += ":" + port
	}
	return origin
}

// SameOrigin reports whether a and b have equal, non-opaque origins.
func SameOrigin(a string, b string) bool {
	oa := Origin(a)
	if oa == Opaque {
		return false
	}
	return oa == Origin(b)
}
