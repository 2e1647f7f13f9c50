// Package server provides the HTTP server for the shiplog API.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, server.GormStores(db), issuer, hasher)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: the root router for public routes
//   - API: the /api subrouter; every route on it requires a bearer token
//   - Issuer: signs and decodes tokens
//   - Hasher: hashes and verifies passwords
//   - the stores the endpoints read and write through
//
// Requests pass through an access log and panic recovery before routing.
package server
