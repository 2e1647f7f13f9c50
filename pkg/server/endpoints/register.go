package endpoints

import "github.com/doodlesbykumbi/shiplog/pkg/server"

// RegisterAll registers all endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterPublicEndpoints(srv)
	RegisterUserEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterProductEndpoints(srv)
	RegisterUpdateEndpoints(srv)
	RegisterUpdatePointEndpoints(srv)
}
