// Package middleware holds the request gate that protects /api routes.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/audit"
	"github.com/doodlesbykumbi/shiplog/pkg/identity"
)

const bearerPrefix = "Bearer "

// ErrNoToken is the cause recorded when a request carries no bearer token.
var ErrNoToken = errors.New("no bearer token")

// Decoder verifies a raw token and returns the identity it carries.
type Decoder interface {
	Decode(raw string) (*identity.Identity, error)
}

// BearerToken extracts the token from an Authorization header value: all of
// the text after "Bearer ". It reports false when that text is empty or holds
// whitespace, which no JWT does.
func BearerToken(header string) (string, bool) {
	raw, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || raw == "" || strings.ContainsAny(raw, " \t") {
		return "", false
	}
	return raw, true
}

// Authenticator gates requests on a valid bearer token.
type Authenticator struct {
	decoder Decoder
}

// NewAuthenticator creates an Authenticator that verifies tokens with decoder.
func NewAuthenticator(decoder Decoder) *Authenticator {
	return &Authenticator{decoder: decoder}
}

// Authenticate returns the identity carried by r's bearer token. Every
// failure is a 401 *apierror.Error with the same client message; the
// underlying cause is available through errors.Unwrap.
func (a *Authenticator) Authenticate(r *http.Request) (*identity.Identity, error) {
	raw, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, apierror.Unauthenticated(ErrNoToken)
	}

	id, err := a.decoder.Decode(raw)
	if err != nil {
		return nil, apierror.Unauthenticated(err)
	}
	return id, nil
}

// Middleware attaches the authenticated identity to the request context, or
// writes a 401 and stops the chain.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Authenticate(r)
		if err != nil {
			reason := err.Error()
			if cause := errors.Unwrap(err); cause != nil {
				reason = cause.Error()
			}
			audit.Log(audit.TokenRejectedEvent{
				ClientIP: r.RemoteAddr,
				Method:   r.Method,
				Path:     r.URL.Path,
				Reason:   reason,
			})
			apierror.Write(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
