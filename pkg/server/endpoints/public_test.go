package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicEndpoints(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Hello World!"},
		{"/user/", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := env.do("GET", tt.path, "", "")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestHandleStatus(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		env := newTestEnv(t)
		env.health.On("CheckConnectivity", anyCtx).Return(nil).Once()

		w := env.do("GET", "/status", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("database unreachable", func(t *testing.T) {
		env := newTestEnv(t)
		env.health.On("CheckConnectivity", anyCtx).Return(errors.New("dial tcp: connection refused")).Once()

		w := env.do("GET", "/status", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestWhoami(t *testing.T) {
	env := newTestEnv(t)

	t.Run("returns the token's identity", func(t *testing.T) {
		w := env.as(t, "GET", "/api/whoami", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"`+aliceID+`","username":"alice"}`, w.Body.String())
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		w := env.do("GET", "/api/whoami", "", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Not authorized."}`, w.Body.String())
	})

	t.Run("rejects a basic credential like a missing token", func(t *testing.T) {
		missing := env.do("GET", "/api/whoami", "", "")
		basic := env.doWithHeader("GET", "/api/whoami", "Basic abc123")

		assert.Equal(t, http.StatusUnauthorized, basic.Code)
		assert.Equal(t, missing.Body.String(), basic.Body.String())
	})
}

func TestAPIGate_UnmatchedRoutes(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method string
		path   string
		// status once a valid token is presented
		authed int
	}{
		{"GET", "/api/nope", http.StatusNotFound},
		{"PATCH", "/api/product", http.StatusMethodNotAllowed},
		{"GET", "/api/product/x/y/z", http.StatusNotFound},
		{"GET", "/api", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := env.do(tt.method, tt.path, "", "")

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			msg, _ := decodeError(t, w)
			assert.Equal(t, "Not authorized.", msg)

			w = env.as(t, tt.method, tt.path, "")

			assert.Equal(t, tt.authed, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		})
	}
}
