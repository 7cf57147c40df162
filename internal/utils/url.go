package utils

import (
	"errors"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/idna"
)

var (
	ErrEmptyURL    = errors.New("canonicalize: empty url")
	ErrMissingHost = errors.New("canonicalize: missing host")
)

// IsAbsoluteWebURL reports whether input is an absolute http or https URL
// whose hostname contains at least one dot. Malformed input yields false.
//
//	IsAbsoluteWebURL("https://example.com") → true
//	IsAbsoluteWebURL("ftp://example.com")   → false
//	IsAbsoluteWebURL("http://localhost")    → false
//	IsAbsoluteWebURL("not a url")           → false
func IsAbsoluteWebURL(input string) bool {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	// url.Parse lowercases the scheme.
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.Contains(u.Hostname(), ".")
}

// CanonicalizeOptions controls optional canonicalization policies.
type CanonicalizeOptions struct {
	StripTrailingSlash bool   // treat /a and /a/ the same (root "/" is kept)
	DropTrackingParams bool   // remove utm_*, gclid, fbclid, ...
	DefaultScheme      string // assumed for schemeless input; empty means scheme is required
}

var trackingParams = map[string]struct{}{
	"utm_source": {}, "utm_medium": {}, "utm_campaign": {}, "utm_term": {}, "utm_content": {},
	"gclid": {}, "fbclid": {}, "mc_cid": {}, "mc_eid": {},
}

// DefaultCanonicalizeOptions is the policy used to decide whether two scans
// looked at the same page.
var DefaultCanonicalizeOptions = CanonicalizeOptions{
	StripTrailingSlash: true,
	DropTrackingParams: true,
}

// Canonicalize returns a deterministic form of raw: lowercased scheme and
// punycode host, default ports, credentials and fragment removed, cleaned
// path, sorted query.
//
//	"HTTP://Example.COM:80/foo/../bar/?b=2&a=1#frag" → "http://example.com/bar?a=1&b=2"
//	"https://例え.テスト/a"                          → "https://xn--r8jz45g.xn--zckzah/a"
func Canonicalize(raw string, opts CanonicalizeOptions) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}
	if opts.DefaultScheme != "" && !strings.Contains(raw, "://") {
		raw = opts.DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", ErrMissingHost
	}

	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}
	port := u.Port()
	switch {
	case (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443"), port == "":
		u.Host = host
	default:
		u.Host = net.JoinHostPort(host, port)
	}
	u.User = nil
	u.Fragment = ""

	p := path.Clean(u.Path)
	if p == "." {
		p = "/"
	}
	if opts.StripTrailingSlash && len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	u.Path = p
	u.RawPath = ""

	q := u.Query()
	if opts.DropTrackingParams {
		for k := range q {
			if _, ok := trackingParams[strings.ToLower(k)]; ok {
				q.Del(k)
			}
		}
	}
	for _, vs := range q {
		sort.Strings(vs)
	}
	// Values.Encode sorts by key.
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// SameTarget reports whether two raw URLs canonicalize to the same page.
// Inputs that fail to canonicalize are compared verbatim.
func SameTarget(a, b string) bool {
	ca, errA := Canonicalize(a, DefaultCanonicalizeOptions)
	cb, errB := Canonicalize(b, DefaultCanonicalizeOptions)
	if errA != nil || errB != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return ca == cb
}
