package cookie

import (
	"regexp"
	"strings"
)

var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// secondLevelLabels are second-level labels under which registrable
// domains sit one label deeper (shop.example.co.jp -> example.co.jp).
// This is a fixed approximation, not a public-suffix-list lookup.
var secondLevelLabels = map[string]struct{}{
	"co": {}, "ne": {}, "or": {}, "go": {}, "ac": {}, "ad": {}, "ed": {}, "gr": {},
	"com": {}, "net": {}, "org": {}, "gov": {}, "edu": {}, "info": {}, "biz": {},
}

// ResolveRootDomain returns the registrable domain for host, used to
// scope tracking cookies across subdomains. localhost and dotted-quad
// IPv4 hosts are returned unchanged.
func ResolveRootDomain(host string) string {
	if host == "localhost" || ipv4Pattern.MatchString(host) {
		return host
	}

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	if _, ok := secondLevelLabels[labels[len(labels)-2]]; ok {
		return strings.Join(labels[len(labels)-3:], ".")
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// bareHost reports whether the domain attribute must be omitted when
// writing a cookie. Browsers reject domain attributes for raw IPs and
// localhost.
func bareHost(domain string) bool {
	return domain == "" || domain == "localhost" || ipv4Pattern.MatchString(domain)
}
