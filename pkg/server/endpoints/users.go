package endpoints

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/doodlesbykumbi/shiplog/pkg/apierror"
	"github.com/doodlesbykumbi/shiplog/pkg/audit"
	"github.com/doodlesbykumbi/shiplog/pkg/credential"
	"github.com/doodlesbykumbi/shiplog/pkg/identity"
	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/server/store"
)

var errPasswordMismatch = errors.New("password mismatch")

// TokenIssuer signs tokens for an identity.
type TokenIssuer interface {
	Issue(id identity.Identity) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
	Burn(plaintext string)
}

// CredentialsRequest is the body of /user/new-user and /user/login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c CredentialsRequest) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required, validation.RuneLength(2, 255)),
		validation.Field(&c.Password, validation.Required, validation.Length(4, credential.MaxPasswordLength)),
	)
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterUserEndpoints registers account creation and login.
func RegisterUserEndpoints(s *server.Server) {
	s.Router.HandleFunc("/user/new-user", handleRegister(s.UsersStore, s.Hasher, s.Issuer)).Methods("POST")
	s.Router.HandleFunc("/user/login", handleLogin(s.UsersStore, s.Hasher, s.Issuer)).Methods("POST")
}

func handleRegister(users store.UsersStore, hasher PasswordHasher, issuer TokenIssuer) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		var req CredentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		event := audit.RegisterEvent{Username: req.Username, ClientIP: clientIP(r)}

		hash, err := hasher.Hash(req.Password)
		if err != nil {
			return apierror.Internal(err)
		}

		user, err := users.CreateUser(r.Context(), req.Username, hash)
		if err != nil {
			event.Reason = err.Error()
			audit.Log(event)
			if errors.Is(err, store.ErrUserExists) {
				return apierror.Conflict(apierror.MsgUserExists, err)
			}
			return apierror.Internal(err)
		}

		tok, err := issuer.Issue(identity.Identity{ID: user.ID, Username: user.Username})
		if err != nil {
			return apierror.Internal(err)
		}

		event.UserID = user.ID
		event.Success = true
		audit.Log(event)

		respondWithJSON(w, http.StatusCreated, TokenResponse{Token: tok})
		return nil
	})
}

// handleLogin answers every failed login the same way. An unknown username
// still pays for a bcrypt comparison.
func handleLogin(users store.UsersStore, hasher PasswordHasher, issuer TokenIssuer) http.HandlerFunc {
	return handle(func(w http.ResponseWriter, r *http.Request) error {
		var req CredentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return err
		}
		if err := validate(req); err != nil {
			return err
		}

		event := audit.AuthenticateEvent{Username: req.Username, ClientIP: clientIP(r)}
		fail := func(cause error) error {
			event.Reason = cause.Error()
			audit.Log(event)
			return apierror.InvalidCredentials(cause)
		}

		user, err := users.FindUserByUsername(r.Context(), req.Username)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			hasher.Burn(req.Password)
			return fail(err)
		case err != nil:
			return apierror.Internal(err)
		}

		event.UserID = user.ID
		if !hasher.Verify(req.Password, user.Password) {
			return fail(errPasswordMismatch)
		}

		tok, err := issuer.Issue(identity.Identity{ID: user.ID, Username: user.Username})
		if err != nil {
			return apierror.Internal(err)
		}

		event.Success = true
		audit.Log(event)

		respondWithJSON(w, http.StatusOK, TokenResponse{Token: tok})
		return nil
	})
}
