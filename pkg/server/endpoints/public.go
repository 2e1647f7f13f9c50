package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterPublicEndpoints registers the routes that need no token.
func RegisterPublicEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleText("Hello World!")).Methods("GET")
	s.Router.HandleFunc("/user/", handleText("hello world")).Methods("GET")
	s.Router.HandleFunc("/status", handleStatus(s.HealthStore)).Methods("GET")
}

func handleText(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(r.Context()); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}
