// Package hostclass classifies host tokens typed by a user and answers
// whether a classified host lives on a private or loopback network.
package hostclass

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	maxHostnameLen = 253
	maxLabelLen    = 63
)

// Kind identifies the shape of a recognized host.
type Kind int

const (
	Localhost Kind = iota + 1
	IPv4
	IPv6
	Hostname
)

func (k Kind) String() string {
	switch k {
	case Localhost:
		return "localhost"
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	case Hostname:
		return "hostname"
	default:
		return "unrecognized"
	}
}

// Info describes a recognized host. Octets is set for IPv4, Addr holds the
// lowercase address without brackets for IPv6.
type Info struct {
	Kind   Kind
	Octets [4]byte
	Addr   string
}

// Classify parses a host token. The second return value is false when the
// token is not a navigable host.
func Classify(token string) (Info, bool) {
	if token == "" || hasSpace(token) {
		return Info{}, false
	}

	if strings.EqualFold(token, "localhost") {
		return Info{Kind: Localhost}, true
	}

	if octets, ok := parseIPv4(token); ok {
		return Info{Kind: IPv4, Octets: octets}, true
	}

	if addr, ok := parseBracketedIPv6(token); ok {
		return Info{Kind: IPv6, Addr: addr}, true
	}

	if isHostname(token) {
		return Info{Kind: Hostname}, true
	}

	return Info{}, false
}

// IsPrivate reports whether the host is loopback, RFC1918, link-local or an
// IPv6 unique-local address.
func IsPrivate(info Info) bool {
	switch info.Kind {
	case Localhost:
		return true
	case IPv4:
		return isPrivateIPv4(info.Octets)
	case IPv6:
		return isPrivateIPv6(info.Addr)
	default:
		return false
	}
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

func parseIPv4(token string) ([4]byte, bool) {
	var octets [4]byte
	groups := strings.Split(token, ".")
	if len(groups) != 4 {
		return octets, false
	}
	for i, g := range groups {
		if len(g) == 0 || !allDigits(g) {
			return octets, false
		}
		n, err := strconv.Atoi(g)
		if err != nil || n > 255 {
			return octets, false
		}
		octets[i] = byte(n)
	}
	return octets, true
}

func parseBracketedIPv6(token string) (string, bool) {
	if len(token) < 3 || token[0] != '[' || token[len(token)-1] != ']' {
		return "", false
	}
	inner := token[1 : len(token)-1]
	if !strings.Contains(inner, ":") {
		return "", false
	}
	for i := 0; i < len(inner); i++ {
		if !isIPv6Char(inner[i]) {
			return "", false
		}
	}
	return strings.ToLower(inner), true
}

func isIPv6Char(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
	case c >= 'a' && c <= 'f':
	case c >= 'A' && c <= 'F':
	case c == ':' || c == '.' || c == '%':
	default:
		return false
	}
	return true
}

func isHostname(token string) bool {
	if len(token) > maxHostnameLen || !strings.Contains(token, ".") {
		return false
	}
	for _, label := range strings.Split(token, ".") {
		if !isLabel(label) {
			return false
		}
	}
	return true
}

func isLabel(label string) bool {
	if len(label) == 0 || len(label) > maxLabelLen {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		if !isAlnum(c) && c != '-' {
			return false
		}
	}
	return true
}

func isPrivateIPv4(o [4]byte) bool {
	switch {
	case o[0] == 0, o[0] == 10, o[0] == 127:
		return true
	case o[0] == 172 && o[1] >= 16 && o[1] <= 31:
		return true
	case o[0] == 192 && o[1] == 168:
		return true
	case o[0] == 169 && o[1] == 254:
		return true
	}
	return false
}

func isPrivateIPv6(addr string) bool {
	if i := strings.IndexByte(addr, '%'); i >= 0 {
		addr = addr[:i]
	}
	addr = strings.ToLower(addr)
	if addr == "::" || addr == "::1" {
		return true
	}

	var first uint64
	if !strings.HasPrefix(addr, "::") {
		hextet := addr
		if i := strings.IndexByte(addr, ':'); i >= 0 {
			hextet = addr[:i]
		}
		v, err := strconv.ParseUint(hextet, 16, 16)
		if err != nil {
			return false
		}
		first = v
	}

	// fc00::/7 unique-local, fe80::/10 link-local
	return first&0xfe00 == 0xfc00 || first&0xffc0 == 0xfe80
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
