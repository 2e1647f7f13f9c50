package endpoints

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/identity"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

const msgMalformedBody = "Malformed request body."

var errNoIdentity = errors.New("no identity on request context")

// apiHandler is an http handler that reports failure by returning an error.
type apiHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http.HandlerFunc. Server errors are logged with their
// cause; clients only see the message.
func handle(fn apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		apiErr := apierror.From(err)
		if apiErr.Status >= http.StatusInternalServerError {
			log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		}
		apierror.Write(w, apiErr)
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithData wraps payload in the {"data": ...} envelope.
func respondWithData(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"data": payload})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apierror.BadRequest(msgMalformedBody, err)
	}
	return nil
}

// requestIdentity returns the identity the bearer middleware attached.
func requestIdentity(r *http.Request) (*identity.Identity, error) {
	id, ok := identity.Get(r.Context())
	if !ok {
		return nil, apierror.Unauthenticated(errNoIdentity)
	}
	return id, nil
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
