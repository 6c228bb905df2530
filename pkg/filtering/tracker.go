package filtering

import "fmt"

// IsBlockedHost reports whether host is a blocklist entry or a subdomain
// of one.
func IsBlockedHost(host string, blocklist *DomainSet) bool {
	return blocklist.Contains(NormalizeHost(host))
}

// ShouldBlock decides whether a sub-resource request to requestURL issued
// by the page at initiatorURL is a cross-site tracking request.
func ShouldBlock(requestURL string, initiatorURL string, blocklist *DomainSet) Verdict {
	return Evaluate(Request{URL: requestURL, Initiator: initiatorURL}, blocklist, nil)
}

// Evaluate applies the blocklist to req. Requests are allowed whenever the
// outcome cannot be established: unparseable URLs, unknown initiators and
// first-party requests all pass. Hosts on the allowlist are never blocked.
func Evaluate(req Request, blocklist *DomainSet, allowlist *DomainSet) Verdict {
	host, ok := HostFromURL(req.URL)
	if !ok {
		return Verdict{Reason: "request host unavailable"}
	}

	if rule, ok := allowlist.Match(host); ok {
		return Verdict{Host: host, Rule: rule, Reason: "allowlisted"}
	}

	rule, ok := blocklist.Match(host)
	if !ok {
		return Verdict{Host: host}
	}

	initiator, ok := HostFromURL(req.Initiator)
	if !ok {
		initiator, ok = HostFromURL(req.Referrer)
	}
	if !ok {
		return Verdict{Host: host, Rule: rule, Reason: "initiator unavailable"}
	}

	if IsSameSite(host, initiator) {
		return Verdict{Host: host, Initiator: initiator, Rule: rule, Reason: "first-party request"}
	}

	return Verdict{
		Blocked:   true,
		Host:      host,
		Initiator: initiator,
		Rule:      rule,
		Reason:    fmt.Sprintf("third-party request to %s matched %s", host, rule),
	}
}
