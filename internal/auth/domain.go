package auth

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	adminPathPrefix = "/api/admin"
	verifyKeyPath   = "/api/v1/keys/verify"
)

// SkipDomainCheck reports whether path is exempt from CheckDomain.
func SkipDomainCheck(path string) bool {
	if path == verifyKeyPath {
		return true
	}
	return path == adminPathPrefix || strings.HasPrefix(path, adminPathPrefix+"/")
}

// RequestHostname returns the lower-cased hostname of the request's Origin
// header, falling back to Referer. It is empty when neither parses.
func RequestHostname(r *http.Request) string {
	source := r.Header.Get("Origin")
	if source == "" {
		source = r.Header.Get("Referer")
	}
	if source == "" {
		return ""
	}
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// MatchDomain reports whether host is allowed by pattern. A pattern is either
// an exact hostname or "*.suffix", which matches any subdomain of suffix but
// not suffix itself.
func MatchDomain(pattern, host string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	host = strings.ToLower(host)
	if pattern == "" || host == "" {
		return false
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := pattern[1:]
		return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
	}
	return pattern == host
}
