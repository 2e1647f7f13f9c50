// Package endpoints registers shiplog's HTTP routes on a server.Server.
//
// Public routes (/, /status and /user/...) are mounted on the root router.
// Everything under /api is mounted on the server's API subrouter, which runs
// the bearer token middleware first, so handlers there can rely on
// identity.Get returning the caller.
//
// Handlers return errors instead of writing them. handle converts any error
// into the JSON body produced by apierror.Write.
package endpoints
