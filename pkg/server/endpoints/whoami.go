package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/shiplog/pkg/server"
)

// RegisterWhoamiEndpoint registers GET /api/whoami
func RegisterWhoamiEndpoint(s *server.Server) {
	s.API.HandleFunc("/whoami", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		id, err := requestIdentity(r)
		if err != nil {
			return err
		}
		respondWithJSON(w, http.StatusOK, id)
		return nil
	})
}
