package filtering

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// HostFromURL extracts the normalized hostname of raw. Input that does not
// parse as an absolute URL is retried with an assumed "http://" prefix,
// unless it already carries an authority marker. So is "host:port/path",
// which url.Parse reads as scheme "host".
func HostFromURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || isPortOnly(u) {
		if strings.Contains(raw, "://") {
			return "", false
		}
		u, err = url.Parse("http://" + raw)
		if err != nil {
			return "", false
		}
	}
	host := NormalizeHost(u.Hostname())
	return host, host != ""
}

// NormalizeHost lowercases host and drops one trailing dot. Non-ASCII
// names are converted to their IDNA ASCII form when possible.
func NormalizeHost(host string) string {
	host = strings.TrimSuffix(host, ".")
	if !isASCII(host) {
		if ascii, err := idna.Lookup.ToASCII(host); err == nil {
			host = ascii
		}
	}
	return strings.ToLower(host)
}

// IsSameSite reports whether one host equals the other or is a subdomain
// of it.
func IsSameSite(a string, b string) bool {
	a, b = NormalizeHost(a), NormalizeHost(b)
	if a == "" || b == "" {
		return false
	}
	return isSubdomainOrEqual(a, b) || isSubdomainOrEqual(b, a)
}

func isSubdomainOrEqual(host string, parent string) bool {
	return host == parent || strings.HasSuffix(host, "."+parent)
}

// isPortOnly reports whether u is opaque and the opaque part starts with a
// port number, as in "tracker.example:8080/pixel".
func isPortOnly(u *url.URL) bool {
	if u.Host != "" || u.Opaque == "" {
		return false
	}
	port := u.Opaque
	if i := strings.IndexAny(port, "/?#"); i >= 0 {
		port = port[:i]
	}
	if port == "" {
		return false
	}
	for i := 0; i < len(port); i++ {
		if port[i] < '0' || port[i] > '9' {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
