// Package identity carries the authenticated principal of a request.
//
// An Identity is produced by the bearer-token middleware after a token has
// been verified and is stored in the request context. Downstream handlers
// read it back with Get:
//
//	id, ok := identity.Get(r.Context())
//	if !ok {
//	    // the route is not behind the authentication middleware
//	}
//
// The context value is never mutated once set; each request gets its own.
package identity
