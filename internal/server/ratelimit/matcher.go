package ratelimit

import "strings"

// MatchRoute returns the route for path and method, preferring exact matches
// over prefix matches. HEAD requests match GET routes.
func MatchRoute(path, method string, routes []Route) *Route {
	if method == "HEAD" {
		method = "GET"
	}
	for i := range routes {
		r := &routes[i]
		if r.Path == path && r.Method == method {
			return r
		}
	}
	for i := range routes {
		r := &routes[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}
