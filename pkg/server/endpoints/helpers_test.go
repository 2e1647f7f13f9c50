package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/shiplog/pkg/audit"
	"github.com/doodlesbykumbi/shiplog/pkg/config"
	"github.com/doodlesbykumbi/shiplog/pkg/credential"
	"github.com/doodlesbykumbi/shiplog/pkg/identity"
	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/token"
)

const (
	aliceID   = "6f1c2a4e-8d3b-4b1e-9a53-3f2a1c0d9e11"
	productID = "5b2e6a10-3c4d-4e5f-8a9b-0c1d2e3f4a5b"
	updateID  = "9e8d7c6b-5a4f-4e3d-9c2b-1a0f9e8d7c6b"
	pointID   = "1f2e3d4c-5b6a-4978-8a9b-cdef01234567"
)

var alice = identity.Identity{ID: aliceID, Username: "alice"}

type testEnv struct {
	server       *server.Server
	users        *MockUsersStore
	products     *MockProductsStore
	updates      *MockUpdatesStore
	updatePoints *MockUpdatePointsStore
	health       *MockHealthStore
	audit        *bytes.Buffer
}

// newTestEnv builds a server with every endpoint registered over mock
// stores. Mock expectations are asserted at cleanup.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	issuer, err := token.NewIssuer([]byte("endpoints-secret"))
	require.NoError(t, err)

	env := &testEnv{
		users:        &MockUsersStore{},
		products:     &MockProductsStore{},
		updates:      &MockUpdatesStore{},
		updatePoints: &MockUpdatePointsStore{},
		health:       &MockHealthStore{},
		audit:        captureAudit(t),
	}

	cfg := &config.Config{Mode: config.ModeTest, BindAddress: "127.0.0.1", Port: 3000}
	env.server = server.NewServer(cfg, server.Stores{
		Users:        env.users,
		Products:     env.products,
		Updates:      env.updates,
		UpdatePoints: env.updatePoints,
		Health:       env.health,
	}, issuer, credential.NewHasher(4))
	RegisterAll(env.server)

	t.Cleanup(func() {
		env.users.AssertExpectations(t)
		env.products.AssertExpectations(t)
		env.updates.AssertExpectations(t)
		env.updatePoints.AssertExpectations(t)
		env.health.AssertExpectations(t)
	})
	return env
}

// captureAudit redirects audit output for the duration of the test.
func captureAudit(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := audit.DefaultLogger
	audit.DefaultLogger = audit.NewLogger()
	audit.DefaultLogger.SetWriter(&buf)
	audit.SetEnabled(true)
	t.Cleanup(func() { audit.DefaultLogger = previous })
	return &buf
}

func (e *testEnv) tokenFor(t *testing.T, id identity.Identity) string {
	t.Helper()
	tok, err := e.server.Issuer.Issue(id)
	require.NoError(t, err)
	return tok
}

// do sends a request through the router. A non-empty tok is sent as a bearer token.
func (e *testEnv) do(method, path, body, tok string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	e.server.Router.ServeHTTP(w, req)
	return w
}

// as sends an authenticated request as alice.
func (e *testEnv) as(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(method, path, body, e.tokenFor(t, alice))
}

// decodeData unmarshals the {"data": ...} envelope into dst.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (string, map[string]string) {
	t.Helper()
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error, body.Fields
}

var anyCtx = mock.Anything

func ptr[T any](v T) *T {
	return &v
}

var fixedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func (e *testEnv) doWithHeader(method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authorization)
	w := httptest.NewRecorder()
	e.server.Router.ServeHTTP(w, req)
	return w
}

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
