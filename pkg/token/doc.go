// Package token issues and decodes the signed bearer tokens that carry a
// user's identity.
//
// Tokens are HS256 JSON Web Tokens signed with the service secret. The
// payload holds the identity and the issue and expiry instants:
//
//	{"id": "<user id>", "username": "alice", "iat": 1767225600, "exp": 1767830400}
//
// Tokens are never stored. A token is accepted only when its signature
// verifies with the secret and the current instant is before its expiry.
//
// # Usage
//
//	issuer, err := token.NewIssuer([]byte(cfg.JWTSecret), token.WithTTL(cfg.TokenTTL()))
//	raw, err := issuer.Issue(identity.Identity{ID: user.ID, Username: user.Username})
//	id, err := issuer.Decode(raw)
package token
