package filtering

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"
)

type parseOptions struct {
	ListID     string
	Logger     *slog.Logger
	ErrorLimit int
}

type errorLimiter struct {
	limit int
	count int
}

// parseList reads a tracker list. Accepted lines are plain domains, hosts
// file entries ("0.0.0.0 tracker.example"), wildcard entries
// ("*.tracker.example") and domain-only adblock rules ("||tracker.example^").
// Other adblock rules are skipped.
func parseList(r io.Reader, opts parseOptions) (*DomainSet, ParseStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stats := ParseStats{}
	limiter := errorLimiter{limit: opts.ErrorLimit}
	set := NewDomainSet()

	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		stats.TotalLines++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || isCommentLine(line) {
			continue
		}

		if isAdblockLine(line) {
			domain, ok := adblockDomain(line)
			if !ok {
				stats.Skipped++
				continue
			}
			addTokens([]string{domain}, set, &stats, &limiter, logger, opts.ListID, lineNum)
			continue
		}

		tokens := strings.Fields(line)
		if ip := net.ParseIP(tokens[0]); ip != nil {
			tokens = tokens[1:]
		}
		addTokens(tokens, set, &stats, &limiter, logger, opts.ListID, lineNum)
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scan list: %w", err)
	}

	limiter.summary(logger, opts.ListID, stats.Invalid)
	logger.Info("parsed tracker list", "list", opts.ListID, "domains", stats.Domains, "invalid", stats.Invalid, "skipped", stats.Skipped)
	return set, stats, nil
}

func (l *errorLimiter) log(logger *slog.Logger, listID string, lineNum int, token string, err error) {
	l.count++
	if l.limit == 0 || (l.limit > 0 && l.count > l.limit) {
		return
	}
	logger.Error("invalid tracker list entry", "list", listID, "line", lineNum, "entry", token, "error", err)
}

func (l *errorLimiter) summary(logger *slog.Logger, listID string, invalid int) {
	if l.limit > 0 && invalid > l.limit {
		logger.Warn("tracker list parsing errors suppressed", "list", listID, "errors", invalid, "logged", l.limit)
	}
}

func isCommentLine(line string) bool {
	return isCommentToken(line) || strings.HasPrefix(line, "!") || strings.HasPrefix(line, "[")
}

func isCommentToken(token string) bool {
	return strings.HasPrefix(token, "#") || strings.HasPrefix(token, "//") || strings.HasPrefix(token, ";")
}

func isAdblockLine(line string) bool {
	return strings.HasPrefix(line, "||") || strings.HasPrefix(line, "@@") ||
		strings.ContainsAny(line, "^$") || strings.Contains(line, "##") || strings.Contains(line, "#@#")
}

// adblockDomain extracts the domain of a "||domain^" rule. Rules carrying
// paths, options or exceptions do not describe a whole domain.
func adblockDomain(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "||")
	if !ok {
		return "", false
	}
	domain, ok := strings.CutSuffix(rest, "^")
	if !ok || domain == "" || strings.ContainsAny(domain, "/^$*|") {
		return "", false
	}
	return domain, true
}

func addTokens(tokens []string, set *DomainSet, stats *ParseStats, limiter *errorLimiter, logger *slog.Logger, listID string, lineNum int) {
	for _, token := range tokens {
		if isCommentToken(token) {
			break
		}
		if err := addToken(set, token); err != nil {
			stats.Invalid++
			limiter.log(logger, listID, lineNum, token, err)
			continue
		}
		stats.Domains++
	}
}

func addToken(set *DomainSet, token string) error {
	name := strings.TrimSpace(token)
	if name == "" {
		return fmt.Errorf("empty entry")
	}
	if strings.ContainsAny(name, "/:") {
		return fmt.Errorf("invalid hostname")
	}
	if ip := net.ParseIP(name); ip != nil {
		return fmt.Errorf("ip literals are not domains")
	}

	if suffix, ok := strings.CutPrefix(name, "*."); ok {
		canonical, err := normalizeDomain(suffix)
		if err != nil {
			return err
		}
		set.AddWildcard(canonical)
		return nil
	}

	canonical, err := normalizeDomain(name)
	if err != nil {
		return err
	}
	set.AddExact(canonical)
	return nil
}

func normalizeDomain(name string) (string, error) {
	lower := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if lower == "" {
		return "", fmt.Errorf("empty domain")
	}
	if !isASCII(lower) {
		ascii, err := idna.Lookup.ToASCII(lower)
		if err != nil {
			return "", fmt.Errorf("idna: %w", err)
		}
		lower = ascii
	}
	if strings.Contains(lower, "..") || strings.HasPrefix(lower, ".") {
		return "", fmt.Errorf("empty label")
	}
	for i := 0; i < len(lower); i++ {
		if !isDomainChar(lower[i]) {
			return "", fmt.Errorf("invalid character %q", lower[i])
		}
	}
	if _, ok := dns.IsDomainName(lower); !ok {
		return "", fmt.Errorf("invalid domain")
	}
	return lower, nil
}

func isDomainChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.'
}
