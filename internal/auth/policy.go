package auth

import (
	"sort"
	"strings"
)

// AccessLevel is the policy required to reach a route.
type AccessLevel int

const (
	// AccessPublic routes are reachable without any token.
	AccessPublic AccessLevel = iota
	// AccessAuthenticated routes require a valid principal.
	AccessAuthenticated
	// AccessSelfOrAdmin routes require the principal to own the addressed
	// resource or to hold the admin role.
	AccessSelfOrAdmin
)

// OwnerLookup says where a SelfOrAdmin rule finds the resource-owner
// identifier in the request.
type OwnerLookup int

const (
	// OwnerPathID reads an account UUID from a path parameter.
	OwnerPathID OwnerLookup = iota
	// OwnerQueryEmail reads an account email from a query parameter.
	OwnerQueryEmail
)

// OwnerRef locates the resource owner for a SelfOrAdmin rule.
type OwnerRef struct {
	Lookup OwnerLookup
	Param  string
}

// Rule maps an HTTP method and path pattern to a required access level.
// Pattern is either an exact path or a prefix pattern ending in "/*", which
// matches the prefix itself and anything beneath it. An empty Method matches
// every method.
type Rule struct {
	Method  string
	Pattern string
	Access  AccessLevel
	Owner   OwnerRef
}

// wildcard reports whether the rule matches by prefix.
func (r Rule) wildcard() bool {
	return strings.HasSuffix(r.Pattern, wildcardSuffix)
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}

	if !r.wildcard() {
		return r.Pattern == path
	}

	prefix := strings.TrimSuffix(r.Pattern, wildcardSuffix)
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

const wildcardSuffix = "/*"

// RoutePolicy is the immutable rule table consulted before every request.
// It is built once at startup and safe for unsynchronized concurrent reads.
type RoutePolicy struct {
	rules []Rule
}

// NewRoutePolicy copies and orders the rules most-specific-first: exact
// patterns before wildcard patterns, longer patterns before shorter ones.
func NewRoutePolicy(rules []Rule) *RoutePolicy {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].wildcard() != ordered[j].wildcard() {
			return !ordered[i].wildcard()
		}
		return len(ordered[i].Pattern) > len(ordered[j].Pattern)
	})

	return &RoutePolicy{rules: ordered}
}

// Match returns the rule governing the request. Unmatched routes fail
// closed: they require an authenticated principal, never default to public,
// so registering a new route without a rule cannot expose it.
func (p *RoutePolicy) Match(method, path string) Rule {
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			return rule
		}
	}

	return Rule{Method: method, Pattern: path, Access: AccessAuthenticated}
}
