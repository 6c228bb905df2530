// Package resolve turns free-form address bar input into a navigation target.
package resolve

import (
	"strings"
	"unicode"

	"navpolicy/pkg/hostclass"
	"navpolicy/pkg/scheme"
)

// DefaultSearchTemplate is used when the caller passes an empty template.
const DefaultSearchTemplate = "https://duckduckgo.com/?q="

// Kind tells a loadable URL apart from a search query.
type Kind int

const (
	URL Kind = iota + 1
	Search
)

func (k Kind) String() string {
	switch k {
	case URL:
		return "url"
	case Search:
		return "search"
	default:
		return "none"
	}
}

// Target is the result of resolving user input. URL always holds the string
// to load; Query is set to the trimmed input for searches.
type Target struct {
	Kind  Kind
	URL   string
	Query string
}

// Input resolves raw user input. It returns false when the trimmed input is
// empty and nothing should be loaded.
//
// Rules are tried in order: host:port shorthand, explicit scheme, bare host,
// and finally a search built from searchTemplate.
func Input(raw string, searchTemplate string) (Target, bool) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Target{}, false
	}

	// Checked before the scheme rule: "example.com:8080" also fits the
	// scheme grammar.
	if !hasSpace(input) {
		if info, ok := shorthandHost(input); ok {
			return Target{Kind: URL, URL: prefixFor(info) + input}, true
		}
	}

	if _, _, ok := scheme.Parse(input); ok {
		return Target{Kind: URL, URL: input}, true
	}

	if !hasSpace(input) {
		if info, ok := bareHost(input); ok {
			return Target{Kind: URL, URL: prefixFor(info) + input}, true
		}
	}

	return Target{Kind: Search, URL: SearchURL(input, searchTemplate), Query: input}, true
}

// SearchURL appends the percent-encoded query to template.
func SearchURL(query string, template string) string {
	if template == "" {
		template = DefaultSearchTemplate
	}
	return template + EncodeComponent(query)
}

func prefixFor(info hostclass.Info) string {
	if hostclass.IsPrivate(info) {
		return "http://"
	}
	return "https://"
}

// shorthandHost matches <host>:<digits>[suffix] and classifies the host.
func shorthandHost(input string) (hostclass.Info, bool) {
	host, rest := splitHost(input)
	if host == "" || !strings.HasPrefix(rest, ":") {
		return hostclass.Info{}, false
	}
	port := rest[1:]
	end := strings.IndexAny(port, "/?#")
	if end < 0 {
		end = len(port)
	}
	if end == 0 || !allDigits(port[:end]) {
		return hostclass.Info{}, false
	}
	return hostclass.Classify(host)
}

// bareHost matches <host>[suffix] without a port and classifies the host.
func bareHost(input string) (hostclass.Info, bool) {
	host, rest := splitHost(input)
	if host == "" {
		return hostclass.Info{}, false
	}
	if rest != "" && !strings.ContainsRune("/?#", rune(rest[0])) {
		return hostclass.Info{}, false
	}
	return hostclass.Classify(host)
}

// splitHost cuts the leading host token off input. Bracketed IPv6 literals
// keep their brackets.
func splitHost(input string) (host string, rest string) {
	if strings.HasPrefix(input, "[") {
		end := strings.IndexByte(input, ']')
		if end < 0 {
			return "", input
		}
		return input[:end+1], input[end+1:]
	}
	end := strings.IndexAny(input, ":/?#")
	if end < 0 {
		return input, ""
	}
	return input[:end], input[end:]
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
